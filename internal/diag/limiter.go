package diag

import (
	"fmt"

	"github.com/colt-lang/coltc/internal/source"
)

// Unlimited disables limiting for a severity when passed as its Limits entry.
const Unlimited = -1

// Limiter forwards up to Limits[severity] diagnostics of each severity to
// the wrapped reporter. Once the limit is reached it emits a single
// "No more <severity> will be reported." notice and suppresses every
// further report of that severity. Unlimited disables the cap entirely.
type Limiter struct {
	next      Reporter
	Limits    map[Severity]int
	seen      map[Severity]int
	announced map[Severity]bool
}

// NewLimiter wraps next with per-severity report caps.
func NewLimiter(next Reporter, limits map[Severity]int) *Limiter {
	return &Limiter{
		next:      next,
		Limits:    limits,
		seen:      make(map[Severity]int),
		announced: make(map[Severity]bool),
	}
}

// allow reports whether a diagnostic of sev should still be forwarded,
// emitting the one-time cutoff notice the moment the limit is crossed.
func (l *Limiter) allow(sev Severity) bool {
	limit, ok := l.Limits[sev]
	if !ok || limit == Unlimited {
		return true
	}
	if l.seen[sev] < limit {
		l.seen[sev]++
		return true
	}
	l.seen[sev]++
	if !l.announced[sev] {
		l.announced[sev] = true
		l.next.Message(fmt.Sprintf("No more %s will be reported.", sev), nil, 0)
	}
	return false
}

func (l *Limiter) Message(text string, info *source.SourceInfo, id int) {
	if l.allow(Message) {
		l.next.Message(text, info, id)
	}
}

func (l *Limiter) Warn(text string, info *source.SourceInfo, id int) {
	if l.allow(Warning) {
		l.next.Warn(text, info, id)
	}
}

func (l *Limiter) Error(text string, info *source.SourceInfo, id int) {
	if l.allow(Error) {
		l.next.Error(text, info, id)
	}
}

func (l *Limiter) Counts() Counts { return l.next.Counts() }
