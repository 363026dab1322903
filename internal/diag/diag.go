// Package diag implements the composable error-reporter stack (§4.3):
// a Sink that discards, a Console that renders colored excerpts, a Filter
// that gates by severity predicate, and a Limiter that caps how many
// reports of a severity are emitted before announcing a cutoff.
package diag

import "github.com/colt-lang/coltc/internal/source"

// Severity classifies a diagnostic as an informational message, a
// warning, or an error.
type Severity int

const (
	Message Severity = iota
	Warning
	Error
)

// Letter returns the single-character tag used in the "(X<id>)" header.
func (s Severity) Letter() byte {
	switch s {
	case Warning:
		return 'W'
	case Error:
		return 'E'
	default:
		return 'M'
	}
}

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warnings"
	case Error:
		return "errors"
	default:
		return "messages"
	}
}

// Diagnostic is one reported item, optionally anchored to a source excerpt.
type Diagnostic struct {
	Severity Severity
	ID       int // 0 means "no id"
	Text     string
	Info     source.SourceInfo
	HasInfo  bool
}

// Counts tallies how many diagnostics of each severity actually reached
// the end of the reporter chain (i.e. were not discarded by a Filter or
// suppressed by a Limiter).
type Counts struct {
	Messages int
	Warnings int
	Errors   int
}

func (c *Counts) add(sev Severity) {
	switch sev {
	case Warning:
		c.Warnings++
	case Error:
		c.Errors++
	default:
		c.Messages++
	}
}

// Reporter is the interface every layer implements. Message, Warn and
// Error each take a string, an optional source excerpt, and an optional
// numeric report id.
type Reporter interface {
	Message(text string, info *source.SourceInfo, id int)
	Warn(text string, info *source.SourceInfo, id int)
	Error(text string, info *source.SourceInfo, id int)
	Counts() Counts
}

func makeDiagnostic(sev Severity, text string, info *source.SourceInfo, id int) Diagnostic {
	d := Diagnostic{Severity: sev, ID: id, Text: text}
	if info != nil {
		d.Info = *info
		d.HasInfo = true
	}
	return d
}

// Sink discards every diagnostic. It is the base of a composed stack when
// output should be suppressed entirely (e.g. a linting dry-run).
type Sink struct{}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Message(string, *source.SourceInfo, int) {}
func (s *Sink) Warn(string, *source.SourceInfo, int)     {}
func (s *Sink) Error(string, *source.SourceInfo, int)    {}
func (s *Sink) Counts() Counts                           { return Counts{} }
