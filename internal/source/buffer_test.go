package source

import (
	"strings"
	"testing"

	"github.com/colt-lang/coltc/pkg/token"
)

func TestAppendAndAt(t *testing.T) {
	b := New("let x = 1;")
	h := b.AppendToken(token.LET, token.Position{Line: 1, Column: 1, Length: 3})
	tok := b.At(h)
	if tok.Type != token.LET {
		t.Fatalf("got %s, want LET", tok.Type)
	}
	if tok.HasPayload() {
		t.Fatal("plain token should have no payload")
	}
}

func TestLiteralSlot(t *testing.T) {
	b := New("let x = 42;")
	h := b.AppendLiteral(42, token.INT, token.ILLEGAL, token.Position{Line: 1, Column: 9, Length: 2})
	if got := b.Literal(h); got != 42 {
		t.Fatalf("Literal = %d, want 42", got)
	}
	if got := b.LiteralSuffix(h); got != token.ILLEGAL {
		t.Fatalf("LiteralSuffix = %s, want ILLEGAL (no suffix)", got)
	}
}

func TestLiteralSlotCarriesSuffix(t *testing.T) {
	b := New("let x = 5u8;")
	h := b.AppendLiteral(5, token.INT, token.U8, token.Position{Line: 1, Column: 9, Length: 3})
	if got := b.LiteralSuffix(h); got != token.U8 {
		t.Fatalf("LiteralSuffix = %s, want u8", got)
	}
}

func TestIdentifierInterning(t *testing.T) {
	b := New("x x")
	h1 := b.AppendIdentifier("x", token.IDENT, token.Position{Line: 1, Column: 1, Length: 1})
	h2 := b.AppendIdentifier("x", token.IDENT, token.Position{Line: 1, Column: 3, Length: 1})
	if b.Identifier(h1) != "x" || b.Identifier(h2) != "x" {
		t.Fatal("identifier text mismatch")
	}
	// Interning shares the slot for repeated names.
	if b.payloads[h1.Index] != b.payloads[h2.Index] {
		t.Error("repeated identifier should share a single interned slot")
	}
}

func TestSourceInfoExprIsSubstringOfLines(t *testing.T) {
	// Universal invariant 1 (§8): source_info(t).expr is a substring of source_info(t).lines.
	src := "let x: i32 = 2 + 3 * 4;"
	b := New(src)
	h := b.AppendToken(token.INT, token.Position{Line: 1, Column: 14, Length: 1})
	info := b.SourceInfo(h)
	if !strings.Contains(info.LinesView, info.ExprView) {
		t.Fatalf("expr view %q is not a substring of lines view %q", info.ExprView, info.LinesView)
	}
}

func TestRangeFromSingleEndpointEqualsSourceInfo(t *testing.T) {
	// source_info(range_from(a, a)) == source_info(a).
	b := New("abc def")
	a := b.AppendIdentifier("abc", token.IDENT, token.Position{Line: 1, Column: 1, Length: 3})
	r := b.RangeFrom(a, a)
	if b.SourceInfoRange(r) != b.SourceInfo(a) {
		t.Error("range_from(a, a) should reconstruct the same excerpt as a")
	}
}

func TestCrossBufferHandleRejected(t *testing.T) {
	b1 := New("x")
	b2 := New("y")
	h := b1.AppendIdentifier("x", token.IDENT, token.Position{Line: 1, Column: 1, Length: 1})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic querying a handle from a different buffer")
		}
	}()
	b2.At(h)
}

func TestMultiLineSourceInfo(t *testing.T) {
	src := "/* a\nb */\nlet z = 1;"
	b := New(src)
	h := b.AppendToken(token.COMMENT, token.Position{Line: 1, Column: 1, Length: 4, EndLine: 2})
	info := b.SourceInfo(h)
	if info.LineBegin != 1 || info.LineEnd != 2 {
		t.Fatalf("got lines %d-%d, want 1-2", info.LineBegin, info.LineEnd)
	}
	if !strings.Contains(info.LinesView, "b */") {
		t.Fatalf("lines view %q missing second line", info.LinesView)
	}
}
