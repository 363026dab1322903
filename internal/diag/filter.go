package diag

import "github.com/colt-lang/coltc/internal/source"

// Filter forwards a diagnostic to the wrapped reporter only when Predicate
// returns true for its severity. A nil Predicate forwards everything.
type Filter struct {
	next      Reporter
	Predicate func(Severity) bool
}

// NewFilter wraps next, forwarding only diagnostics for which predicate
// returns true.
func NewFilter(next Reporter, predicate func(Severity) bool) *Filter {
	return &Filter{next: next, Predicate: predicate}
}

func (f *Filter) allow(sev Severity) bool {
	return f.Predicate == nil || f.Predicate(sev)
}

func (f *Filter) Message(text string, info *source.SourceInfo, id int) {
	if f.allow(Message) {
		f.next.Message(text, info, id)
	}
}

func (f *Filter) Warn(text string, info *source.SourceInfo, id int) {
	if f.allow(Warning) {
		f.next.Warn(text, info, id)
	}
}

func (f *Filter) Error(text string, info *source.SourceInfo, id int) {
	if f.allow(Error) {
		f.next.Error(text, info, id)
	}
}

func (f *Filter) Counts() Counts { return f.next.Counts() }
