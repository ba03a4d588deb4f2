// Package ignore loads the regular expressions that hide directories from
// jcd results and prune them from traversal.
//
// Rules come from exactly one file: the first that exists along an ordered
// list of sources. Patterns are compiled with Go's RE2-based regexp package,
// so matching time is linear in the input; patterns whose shape would be
// catastrophic under a backtracking engine are rejected anyway so the same
// ignore file behaves identically everywhere it is used.
package ignore

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// DefaultMaxRules is the number of valid rules kept from one ignore file
const DefaultMaxRules = 100

const (
	maxPatternLength = 1024
	maxProgramSize   = 10000
)

var (
	// ErrPatternTooLong is returned for patterns longer than maxPatternLength bytes
	ErrPatternTooLong = errors.New("pattern too long")
	// ErrPatternTooComplex is returned when the compiled program exceeds maxProgramSize instructions
	ErrPatternTooComplex = errors.New("pattern too complex")
	// ErrNestedRepetition is returned for an unbounded repetition nested inside another
	ErrNestedRepetition = errors.New("nested unbounded repetition")
)

// Rule is one compiled ignore pattern
type Rule struct {
	Pattern *regexp.Regexp
	Source  string // File the rule was read from
	Line    int    // 1-based line number in Source
}

// RejectedError describes a line that could not become a rule
type RejectedError struct {
	Source  string
	Line    int
	Pattern string
	Err     error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s:%d: rejected ignore pattern %q: %v", e.Source, e.Line, e.Pattern, e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// RuleSet is the active ignore policy. A nil or empty RuleSet ignores nothing.
type RuleSet struct {
	source   string
	rules    []Rule
	rejected []*RejectedError
	dropped  int
}

// Empty returns a RuleSet with no rules.
func Empty() *RuleSet {
	return &RuleSet{}
}

// Source returns the file the rules came from, or "" when none was found.
func (rs *RuleSet) Source() string {
	if rs == nil {
		return ""
	}
	return rs.source
}

// Len returns the number of active rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns a copy of the active rules in file order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Rejected returns the lines that failed the safety gate.
func (rs *RuleSet) Rejected() []*RejectedError {
	if rs == nil {
		return nil
	}
	return rs.rejected
}

// Dropped returns how many valid patterns were discarded by the rule cap.
func (rs *RuleSet) Dropped() int {
	if rs == nil {
		return 0
	}
	return rs.dropped
}

// Match reports whether a directory base name is ignored.
func (rs *RuleSet) Match(name string) bool {
	_, ok := rs.MatchingRule(name)
	return ok
}

// MatchingRule returns the first rule matching name.
func (rs *RuleSet) MatchingRule(name string) (Rule, bool) {
	if rs == nil {
		return Rule{}, false
	}
	for _, r := range rs.rules {
		if r.Pattern.MatchString(name) {
			return r, true
		}
	}
	return Rule{}, false
}

// Parse builds a RuleSet from ignore file content.
// Blank lines and lines starting with "#" (after trimming) are skipped.
// Invalid or unsafe patterns are recorded as rejected and parsing continues.
// At most maxRules valid rules are kept; maxRules <= 0 means DefaultMaxRules.
func Parse(content, source string, maxRules int) *RuleSet {
	if maxRules <= 0 {
		maxRules = DefaultMaxRules
	}

	rs := &RuleSet{source: source}
	content = strings.ReplaceAll(content, "\r\n", "\n")

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		re, err := Compile(line)
		if err != nil {
			rs.rejected = append(rs.rejected, &RejectedError{
				Source:  source,
				Line:    i + 1,
				Pattern: line,
				Err:     err,
			})
			continue
		}

		if len(rs.rules) >= maxRules {
			rs.dropped++
			continue
		}
		rs.rules = append(rs.rules, Rule{Pattern: re, Source: source, Line: i + 1})
	}

	return rs
}

// Compile validates and compiles one ignore pattern.
func Compile(pattern string) (*regexp.Regexp, error) {
	if len(pattern) > maxPatternLength {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrPatternTooLong, len(pattern), maxPatternLength)
	}

	tree, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, err
	}

	if hasNestedRepetition(tree, false) {
		return nil, ErrNestedRepetition
	}

	prog, err := syntax.Compile(tree.Simplify())
	if err != nil {
		return nil, err
	}
	if len(prog.Inst) > maxProgramSize {
		return nil, fmt.Errorf("%w: %d instructions (limit %d)", ErrPatternTooComplex, len(prog.Inst), maxProgramSize)
	}

	return regexp.Compile(pattern)
}

// hasNestedRepetition reports whether an unbounded repetition appears
// anywhere below another unbounded repetition, e.g. (a+)+ or (a*b*)*.
func hasNestedRepetition(re *syntax.Regexp, insideUnbounded bool) bool {
	unbounded := isUnbounded(re)
	if unbounded && insideUnbounded {
		return true
	}
	for _, sub := range re.Sub {
		if hasNestedRepetition(sub, insideUnbounded || unbounded) {
			return true
		}
	}
	return false
}

func isUnbounded(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus:
		return true
	case syntax.OpRepeat:
		return re.Max == -1
	default:
		return false
	}
}
