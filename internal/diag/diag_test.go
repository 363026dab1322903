package diag

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/colt-lang/coltc/internal/source"
)

func TestConsoleSingleLineExcerpt(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	info := source.SourceInfo{LineBegin: 1, LineEnd: 1, LinesView: "let y = 5 / 0;", ExprView: "5 / 0"}
	c.Error("Integral division by zero is not allowed!", &info, 0)

	snaps.MatchSnapshot(t, buf.String())

	counts := c.Counts()
	require.Equal(t, 1, counts.Errors)
	require.Equal(t, 0, counts.Warnings)
}

func TestConsoleMultiLineExcerpt(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	info := source.SourceInfo{LineBegin: 1, LineEnd: 2, LinesView: "/* a\nb */", ExprView: "/* a\nb */"}
	c.Warn("unterminated block comment", &info, 7)

	snaps.MatchSnapshot(t, buf.String())
}

func TestFilterSuppressesSeverity(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)
	filtered := NewFilter(console, func(s Severity) bool { return s != Warning })

	filtered.Warn("shadowed variable", nil, 0)
	filtered.Error("boom", nil, 0)

	require.NotContains(t, buf.String(), "shadowed variable")
	require.Contains(t, buf.String(), "boom")
	require.Equal(t, 0, filtered.Counts().Warnings)
	require.Equal(t, 1, filtered.Counts().Errors)
}

func TestLimiterAnnouncesCutoffOnce(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)
	limiter := NewLimiter(console, map[Severity]int{Error: 2})

	for i := 0; i < 5; i++ {
		limiter.Error("repeated error", nil, 0)
	}

	require.Equal(t, 2, limiter.Counts().Errors)
	require.Equal(t, 1, limiter.Counts().Messages, "the cutoff notice is itself one message")

	out := buf.String()
	require.Contains(t, out, "No more errors will be reported.")
	// Only one cutoff notice, even though five errors were attempted.
	require.Equal(t, 1, countOccurrences(out, "No more errors will be reported."))
}

func TestLimiterUnlimitedDisablesCap(t *testing.T) {
	console := NewConsole(&bytes.Buffer{}, false)
	limiter := NewLimiter(console, map[Severity]int{Error: Unlimited})
	for i := 0; i < 10; i++ {
		limiter.Error("e", nil, 0)
	}
	require.Equal(t, 10, limiter.Counts().Errors)
}

func TestSinkDiscardsEverything(t *testing.T) {
	s := NewSink()
	s.Message("m", nil, 0)
	s.Warn("w", nil, 0)
	s.Error("e", nil, 0)
	require.Equal(t, Counts{}, s.Counts())
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}
