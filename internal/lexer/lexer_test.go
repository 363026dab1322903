package lexer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

func collectKinds(t *testing.T, src string) []token.Type {
	t.Helper()
	return collectKindsWith(t, src, diag.NewSink())
}

func collectKindsWith(t *testing.T, src string, rep diag.Reporter) []token.Type {
	t.Helper()
	buf := Lex(src, rep)
	out := make([]token.Type, buf.Len())
	for i := range out {
		out[i] = buf.Kind(source.TokenHandle{Index: i})
	}
	return out
}

func TestLexSimpleExpression(t *testing.T) {
	got := collectKinds(t, "let x = 1 + 2;")
	require.Equal(t, []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT, token.SEMICOLON, token.EOF,
	}, got)
}

func TestLexCompoundAssignment(t *testing.T) {
	got := collectKinds(t, "x += 1;")
	require.Equal(t, []token.Type{token.IDENT, token.PLUS_ASSIGN, token.INT, token.SEMICOLON, token.EOF}, got)
}

func TestLexShiftVsLessThan(t *testing.T) {
	require.Equal(t, []token.Type{token.IDENT, token.LT, token.IDENT, token.SEMICOLON, token.EOF},
		collectKinds(t, "a < b;"))
	require.Equal(t, []token.Type{token.IDENT, token.SHL, token.INT, token.SEMICOLON, token.EOF},
		collectKinds(t, "a << 2;"))
	require.Equal(t, []token.Type{token.IDENT, token.SHL_ASSIGN, token.INT, token.SEMICOLON, token.EOF},
		collectKinds(t, "a <<= 2;"))
}

func TestLexArrowVsMinus(t *testing.T) {
	require.Equal(t,
		[]token.Type{token.FN, token.LPAREN, token.RPAREN, token.ARROW, token.I32, token.LBRACE, token.RBRACE, token.EOF},
		collectKinds(t, "fn() -> i32 {}"))
}

func TestLexLineComment(t *testing.T) {
	got := collectKinds(t, "let x = 1; // trailing comment\nlet y = 2;")
	require.NotContains(t, got, token.COMMENT)
	require.Equal(t, token.LET, got[0])
	require.Equal(t, token.LET, got[5])
}

func TestLexNestedBlockComment(t *testing.T) {
	got := collectKinds(t, "/* outer /* inner */ still outer */ let x = 1;")
	require.Equal(t, []token.Type{token.LET, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON, token.EOF}, got)
}

func TestLexUnterminatedBlockCommentReportsAndRecovers(t *testing.T) {
	rep := &countingReporter{}
	buf := Lex("/* never closed", rep)
	require.Equal(t, 1, rep.errors)
	require.Equal(t, 1, buf.Len()) // just EOF
}

func TestLexNonKeywordPrefixIsIdentifier(t *testing.T) {
	got := collectKinds(t, "pub fn main() -> unit {}")
	// "pub" is not a reserved spelling in this language; confirm it lexes
	// as a plain identifier rather than being confused with "public".
	require.Equal(t, token.IDENT, got[0])
}

func TestLexIntegerBases(t *testing.T) {
	got := collectKinds(t, "0x1F + 0b101 + 0o17;")
	require.Equal(t, []token.Type{token.INT, token.PLUS, token.INT, token.PLUS, token.INT, token.SEMICOLON, token.EOF}, got)
}

func TestLexFloatLiteral(t *testing.T) {
	buf := Lex("3.14;", diag.NewSink())
	h := source.TokenHandle{Index: 0}
	require.True(t, buf.Kind(h).IsLiteral())
	bits := buf.Literal(h)
	require.InDelta(t, 3.14, math.Float64frombits(bits), 1e-9)
}

func TestLexIntegerSuffixSelectsType(t *testing.T) {
	cases := []struct {
		src    string
		suffix token.Type
	}{
		{"5u8;", token.U8},
		{"5u16;", token.U16},
		{"5u32;", token.U32},
		{"5u64;", token.U64},
		{"5i8;", token.I8},
		{"5i16;", token.I16},
		{"5i32;", token.I32},
		{"5i64;", token.I64},
	}
	for _, c := range cases {
		buf := Lex(c.src, diag.NewSink())
		h := source.TokenHandle{Index: 0}
		require.Equal(t, token.INT, buf.Kind(h), c.src)
		require.Equal(t, c.suffix, buf.LiteralSuffix(h), c.src)
	}
}

func TestLexUnsuffixedDecimalIntegerDefaultsToI64(t *testing.T) {
	buf := Lex("5;", diag.NewSink())
	h := source.TokenHandle{Index: 0}
	require.Equal(t, token.I64, buf.LiteralSuffix(h))
}

func TestLexUnsuffixedPrefixedIntegerDefaultsToU64(t *testing.T) {
	buf := Lex("0x1F;", diag.NewSink())
	h := source.TokenHandle{Index: 0}
	require.Equal(t, token.U64, buf.LiteralSuffix(h))
}

func TestLexFloatSuffixSelectsType(t *testing.T) {
	buf := Lex("1.5f;", diag.NewSink())
	h := source.TokenHandle{Index: 0}
	require.Equal(t, token.F32, buf.LiteralSuffix(h))

	buf = Lex("1.5d;", diag.NewSink())
	h = source.TokenHandle{Index: 0}
	require.Equal(t, token.F64, buf.LiteralSuffix(h))

	buf = Lex("1.5;", diag.NewSink())
	h = source.TokenHandle{Index: 0}
	require.Equal(t, token.F64, buf.LiteralSuffix(h))
}

func TestLexStringWithDoubledQuoteEscape(t *testing.T) {
	buf := Lex(`"say ""hi"""`, diag.NewSink())
	h := source.TokenHandle{Index: 0}
	require.Equal(t, token.STRING, buf.Kind(h))
	require.Equal(t, `say "hi"`, buf.Identifier(h))
}

func TestLexCharLiteralForms(t *testing.T) {
	got := collectKinds(t, "'a' #65;")
	require.Equal(t, []token.Type{token.CHAR, token.CHAR, token.SEMICOLON, token.EOF}, got)
}

func TestLexReservedUnderscorePrefixIsError(t *testing.T) {
	rep := &countingReporter{}
	Lex("___internal;", rep)
	require.Equal(t, 1, rep.errors)
}

func TestLexAlwaysTerminatesWithEOF(t *testing.T) {
	got := collectKinds(t, "")
	require.Equal(t, []token.Type{token.EOF}, got)
}

func TestLexIllegalCharacterRecovers(t *testing.T) {
	rep := &countingReporter{}
	got := collectKindsWith(t, "a $ b;", rep)
	require.Equal(t, 1, rep.errors)
	require.Equal(t, []token.Type{token.IDENT, token.ILLEGAL, token.IDENT, token.SEMICOLON, token.EOF}, got)
}

// countingReporter is a minimal diag.Reporter double that just tallies
// calls, for tests that only care whether and how often a severity fired.
type countingReporter struct {
	messages, warnings, errors int
	counts                     diag.Counts
}

func (c *countingReporter) Message(string, *source.SourceInfo, int) {
	c.messages++
	c.counts.Messages++
}
func (c *countingReporter) Warn(string, *source.SourceInfo, int) {
	c.warnings++
	c.counts.Warnings++
}
func (c *countingReporter) Error(string, *source.SourceInfo, int) {
	c.errors++
	c.counts.Errors++
}
func (c *countingReporter) Counts() diag.Counts { return c.counts }
