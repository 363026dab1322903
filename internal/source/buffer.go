// Package source implements the columnar token buffer and source map
// described by the front-end's data model: an append-only-during-lexing,
// read-only-during-parsing store of tokens plus side tables for literals,
// identifiers and source lines, from which any diagnostic can reconstruct
// a code excerpt.
package source

import (
	"strings"

	"github.com/google/uuid"

	"github.com/colt-lang/coltc/pkg/token"
)

// TokenHandle is a stable index into a Buffer. On debug builds it also
// carries the owning buffer's identity so cross-buffer token mixing is
// caught at the query site rather than silently reading garbage (§3.2).
type TokenHandle struct {
	Index    int
	bufferID uuid.UUID
}

// InvalidHandle is returned where no token applies.
var InvalidHandle = TokenHandle{Index: -1}

// Valid reports whether h refers to a real token.
func (h TokenHandle) Valid() bool { return h.Index >= 0 }

// TokenRange is a closed [Start, End] slice of the token stream (both
// endpoint tokens included), the unit of diagnostic highlighting.
type TokenRange struct {
	Start, End TokenHandle
}

// SourceInfo is a diagnostic-ready excerpt of the source around a token or
// range: the full lines it touches (LinesView) and the exact substring the
// token or range occupies (ExprView).
type SourceInfo struct {
	LineBegin int
	LineEnd   int
	LinesView string
	ExprView  string
}

// Buffer is the columnar token store. Kinds, positions and payload indices
// are held in separate parallel slices (struct-of-arrays) rather than one
// slice of token structs, matching the "columnar container" data model.
type Buffer struct {
	kinds    []token.Type
	pos      []token.Position
	payloads []int

	literals     []uint64
	litSuffixes  []token.Type
	identifiers  []string
	internByName map[string]int

	lines []string

	// id uniquely identifies this buffer so debug builds can assert a
	// TokenHandle belongs to the buffer it is queried against.
	id uuid.UUID

	// scratch owns transient formatting strings produced by diagnostic
	// calls so their views stay valid until the next Reset.
	scratch []string
}

// New creates an empty buffer over the given source text, split into
// owned lines for later excerpt reconstruction.
func New(src string) *Buffer {
	lines := strings.Split(src, "\n")
	return &Buffer{
		internByName: make(map[string]int),
		lines:        lines,
		id:           uuid.New(),
	}
}

// ID returns the buffer's debug-build identity tag.
func (b *Buffer) ID() uuid.UUID { return b.id }

// checkOwnership panics if h was not produced by b. This is the debug-build
// assertion the spec calls for; it is cheap enough to leave enabled
// unconditionally rather than gating behind a build tag.
func (b *Buffer) checkOwnership(h TokenHandle) {
	if h.bufferID != uuid.Nil && h.bufferID != b.id {
		panic("source: token handle does not belong to this buffer")
	}
}

// Len returns the number of tokens appended so far.
func (b *Buffer) Len() int { return len(b.kinds) }

func (b *Buffer) append(kind token.Type, p token.Position, payload int) TokenHandle {
	idx := len(b.kinds)
	b.kinds = append(b.kinds, kind)
	b.pos = append(b.pos, p)
	b.payloads = append(b.payloads, payload)
	return TokenHandle{Index: idx, bufferID: b.id}
}

// AppendToken appends a payload-less token (punctuation, operator, keyword, EOF, ...).
func (b *Buffer) AppendToken(kind token.Type, p token.Position) TokenHandle {
	return b.append(kind, p, -1)
}

// AppendLiteral reserves a 64-bit literal slot and appends a literal token
// referencing it. suffix is the numeric type suffix the lexer consumed
// (one of the I8..U64/F32/F64 builtin-type kinds), or token.ILLEGAL for a
// literal with no suffix (§4.1) or for a non-numeric literal (CHAR).
func (b *Buffer) AppendLiteral(value uint64, kind token.Type, suffix token.Type, p token.Position) TokenHandle {
	slot := len(b.literals)
	b.literals = append(b.literals, value)
	b.litSuffixes = append(b.litSuffixes, suffix)
	return b.append(kind, p, slot)
}

// AppendIdentifier appends an identifier token, interning its text so
// repeated identifiers share a single view.
func (b *Buffer) AppendIdentifier(name string, kind token.Type, p token.Position) TokenHandle {
	slot, ok := b.internByName[name]
	if !ok {
		slot = len(b.identifiers)
		b.identifiers = append(b.identifiers, name)
		b.internByName[name] = slot
	}
	return b.append(kind, p, slot)
}

// At returns the full token value for h.
func (b *Buffer) At(h TokenHandle) token.Token {
	b.checkOwnership(h)
	return token.Token{Type: b.kinds[h.Index], Pos: b.pos[h.Index], Payload: b.payloads[h.Index]}
}

// Kind returns just the lexeme kind at h, the hot path for parser dispatch.
func (b *Buffer) Kind(h TokenHandle) token.Type {
	b.checkOwnership(h)
	return b.kinds[h.Index]
}

// Literal returns the 64-bit literal slot referenced by h. Panics if h is
// not a literal token; callers must check Kind().IsLiteral() first.
func (b *Buffer) Literal(h TokenHandle) uint64 {
	b.checkOwnership(h)
	return b.literals[b.payloads[h.Index]]
}

// LiteralSuffix returns the numeric type suffix recorded alongside the
// literal slot referenced by h (token.ILLEGAL if the literal had none).
func (b *Buffer) LiteralSuffix(h TokenHandle) token.Type {
	b.checkOwnership(h)
	return b.litSuffixes[b.payloads[h.Index]]
}

// Identifier returns the interned identifier view referenced by h.
func (b *Buffer) Identifier(h TokenHandle) string {
	b.checkOwnership(h)
	return b.identifiers[b.payloads[h.Index]]
}

// RangeFrom aggregates two token handles into a range that includes both.
func (b *Buffer) RangeFrom(start, end TokenHandle) TokenRange {
	b.checkOwnership(start)
	b.checkOwnership(end)
	return TokenRange{Start: start, End: end}
}

// Intern adds s to the scratch table and returns a view stable until the
// next Reset, used by diagnostic formatting calls that need to own their
// rendered string.
func (b *Buffer) Intern(s string) string {
	b.scratch = append(b.scratch, s)
	return b.scratch[len(b.scratch)-1]
}

// ResetScratch discards transient formatting strings produced by Intern.
func (b *Buffer) ResetScratch() { b.scratch = b.scratch[:0] }

// line returns source line n (1-based), or "" if out of range.
func (b *Buffer) line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// SourceInfo reconstructs a diagnostic excerpt for a single token.
func (b *Buffer) SourceInfo(h TokenHandle) SourceInfo {
	b.checkOwnership(h)
	p := b.pos[h.Index]
	endLine := p.EndLine
	if endLine == 0 {
		endLine = p.Line
	}
	var linesBuilder strings.Builder
	for l := p.Line; l <= endLine; l++ {
		if l > p.Line {
			linesBuilder.WriteByte('\n')
		}
		linesBuilder.WriteString(b.line(l))
	}
	linesView := linesBuilder.String()

	exprView := ""
	firstLine := b.line(p.Line)
	if p.Column-1 >= 0 && p.Column-1+p.Length <= len(firstLine) {
		exprView = firstLine[p.Column-1 : p.Column-1+p.Length]
	} else if p.Column-1 >= 0 && p.Column-1 <= len(firstLine) {
		exprView = firstLine[p.Column-1:]
	}

	return SourceInfo{LineBegin: p.Line, LineEnd: endLine, LinesView: linesView, ExprView: exprView}
}

// HasContent reports whether the excerpt carries any rendered text.
func (s SourceInfo) HasContent() bool { return s.LinesView != "" }

// SourceInfoRange reconstructs a diagnostic excerpt spanning a token range,
// concatenating the two endpoints' excerpts.
func (b *Buffer) SourceInfoRange(r TokenRange) SourceInfo {
	if r.Start == r.End {
		return b.SourceInfo(r.Start)
	}
	start := b.SourceInfo(r.Start)
	end := b.SourceInfo(r.End)

	var linesBuilder strings.Builder
	for l := start.LineBegin; l <= end.LineEnd; l++ {
		if l > start.LineBegin {
			linesBuilder.WriteByte('\n')
		}
		linesBuilder.WriteString(b.line(l))
	}

	exprView := start.ExprView
	if end.LineEnd == start.LineBegin {
		// Same line: the expr view spans from the start token through the
		// end token's tail on that line.
		sp := b.pos[r.Start.Index]
		ep := b.pos[r.End.Index]
		firstLine := b.line(sp.Line)
		from := sp.Column - 1
		to := ep.Column - 1 + ep.Length
		if from >= 0 && to <= len(firstLine) && to >= from {
			exprView = firstLine[from:to]
		}
	} else {
		exprView = linesBuilder.String()
	}

	return SourceInfo{LineBegin: start.LineBegin, LineEnd: end.LineEnd, LinesView: linesBuilder.String(), ExprView: exprView}
}
