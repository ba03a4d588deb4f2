package logger

// Sink is the leveled logging surface shared by all loggers in this package.
type Sink interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// MultiLogger forwards every message to each of its sinks.
type MultiLogger struct {
	sinks []Sink
}

// NewMultiLogger creates a MultiLogger. Nil sinks are dropped.
func NewMultiLogger(sinks ...Sink) *MultiLogger {
	ml := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			ml.sinks = append(ml.sinks, s)
		}
	}
	return ml
}

// LogTrace forwards a trace-level message to every sink.
func (ml *MultiLogger) LogTrace(message string) {
	for _, s := range ml.sinks {
		s.LogTrace(message)
	}
}

// LogDebug forwards a debug-level message to every sink.
func (ml *MultiLogger) LogDebug(message string) {
	for _, s := range ml.sinks {
		s.LogDebug(message)
	}
}

// LogInfo forwards an info-level message to every sink.
func (ml *MultiLogger) LogInfo(message string) {
	for _, s := range ml.sinks {
		s.LogInfo(message)
	}
}

// LogWarn forwards a warning-level message to every sink.
func (ml *MultiLogger) LogWarn(message string) {
	for _, s := range ml.sinks {
		s.LogWarn(message)
	}
}

// LogError forwards an error-level message to every sink.
func (ml *MultiLogger) LogError(message string) {
	for _, s := range ml.sinks {
		s.LogError(message)
	}
}
