package logger

import (
	"strings"

	"github.com/fatih/color"
)

// Level orders diagnostics by severity.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error"}

var levelColors = [...]*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgCyan),
	color.New(color.FgBlue),
	color.New(color.FgYellow),
	color.New(color.FgRed),
}

// ParseLevel maps a case-insensitive level name to a Level.
// Unknown or empty names fall back to LevelInfo.
func ParseLevel(name string) Level {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == name {
			return Level(i)
		}
	}
	return LevelInfo
}

func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelError
}

// String returns the lowercase level name.
func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelNames[l]
}

// tag is the upper-case label written in brackets on each line.
func (l Level) tag() string {
	return strings.ToUpper(l.String())
}

// coloredTag is tag wrapped in the level's ANSI color.
func (l Level) coloredTag() string {
	if !l.valid() {
		return l.tag()
	}
	return levelColors[l].Sprint(l.tag())
}
