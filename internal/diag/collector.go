package diag

import "github.com/colt-lang/coltc/internal/source"

// Collector accumulates every diagnostic it receives instead of
// rendering it immediately, for callers that need the full list at once
// (e.g. serializing to JSON for `--diagnostics-format json`).
type Collector struct {
	Diagnostics []Diagnostic
	counts      Counts
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector { return &Collector{} }

func (c *Collector) record(sev Severity, text string, info *source.SourceInfo, id int) {
	c.counts.add(sev)
	c.Diagnostics = append(c.Diagnostics, makeDiagnostic(sev, text, info, id))
}

func (c *Collector) Message(text string, info *source.SourceInfo, id int) { c.record(Message, text, info, id) }
func (c *Collector) Warn(text string, info *source.SourceInfo, id int)    { c.record(Warning, text, info, id) }
func (c *Collector) Error(text string, info *source.SourceInfo, id int)   { c.record(Error, text, info, id) }
func (c *Collector) Counts() Counts                                      { return c.counts }
