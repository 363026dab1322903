package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/colt-lang/coltc/internal/source"
)

// Console renders a colored excerpt to an io.Writer: a header
// "(X<id>) <message>", then for single-line ranges a two-line
// gutter-and-caret display, for multi-line ranges a per-line prefixed
// display with the highlighted span colored (§6.3).
type Console struct {
	w      io.Writer
	colors bool
	counts Counts

	errorColor   *color.Color
	warnColor    *color.Color
	messageColor *color.Color
	dimColor     *color.Color
}

// NewConsole creates a Console writing to w. When colors is false, ANSI
// codes are never emitted (e.g. output is being redirected to a file).
func NewConsole(w io.Writer, colors bool) *Console {
	c := &Console{
		w:      w,
		colors: colors,
	}
	c.errorColor = color.New(color.FgRed, color.Bold)
	c.warnColor = color.New(color.FgYellow, color.Bold)
	c.messageColor = color.New(color.Bold)
	c.dimColor = color.New(color.Faint)
	if !colors {
		c.errorColor.DisableColor()
		c.warnColor.DisableColor()
		c.messageColor.DisableColor()
		c.dimColor.DisableColor()
	}
	return c
}

func (c *Console) colorFor(sev Severity) *color.Color {
	switch sev {
	case Warning:
		return c.warnColor
	case Error:
		return c.errorColor
	default:
		return c.messageColor
	}
}

func (c *Console) report(sev Severity, text string, info *source.SourceInfo, id int) {
	c.counts.add(sev)

	col := c.colorFor(sev)
	header := fmt.Sprintf("(%c", sev.Letter())
	if id != 0 {
		header += fmt.Sprintf("%d", id)
	}
	header += fmt.Sprintf(") %s", text)
	fmt.Fprintln(c.w, col.Sprint(header))

	if info == nil || !info.HasContent() {
		return
	}
	if info.LineBegin == info.LineEnd {
		c.renderSingleLine(*info, col)
	} else {
		c.renderMultiLine(*info, col)
	}
}

func (c *Console) renderSingleLine(info source.SourceInfo, col *color.Color) {
	gutter := fmt.Sprintf(" %d | ", info.LineBegin)
	fmt.Fprintf(c.w, "%s%s\n", gutter, info.LinesView)

	idx := strings.Index(info.LinesView, info.ExprView)
	if idx < 0 {
		idx = 0
	}
	pad := strings.Repeat(" ", len(gutter)+idx)
	underline := "^"
	if n := len(info.ExprView); n > 1 {
		underline += strings.Repeat("~", n-1)
	}
	fmt.Fprintf(c.w, "%s%s\n", pad, col.Sprint(underline))
}

func (c *Console) renderMultiLine(info source.SourceInfo, col *color.Color) {
	lines := strings.Split(info.LinesView, "\n")
	for i, line := range lines {
		lineNum := info.LineBegin + i
		gutter := fmt.Sprintf(" %d | ", lineNum)
		fmt.Fprintf(c.w, "%s%s\n", gutter, col.Sprint(line))
	}
}

func (c *Console) Message(text string, info *source.SourceInfo, id int) { c.report(Message, text, info, id) }
func (c *Console) Warn(text string, info *source.SourceInfo, id int)    { c.report(Warning, text, info, id) }
func (c *Console) Error(text string, info *source.SourceInfo, id int)   { c.report(Error, text, info, id) }
func (c *Console) Counts() Counts                                      { return c.counts }
