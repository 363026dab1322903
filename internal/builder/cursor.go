package builder

import (
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

// kind returns the token kind at the cursor without consuming it.
func (b *Builder) kind() token.Type {
	return b.buf.Kind(b.handle())
}

// handle returns the TokenHandle at the cursor.
func (b *Builder) handle() source.TokenHandle {
	return source.TokenHandle{Index: b.cur}
}

// peekPos returns the current token's position, for diagnostics anchored
// before a token is known to exist.
func (b *Builder) peekPos() token.Position {
	return b.buf.At(b.handle()).Pos
}

// advance consumes and returns the current token's handle, stopping at
// EOF so the cursor never walks past the final token.
func (b *Builder) advance() source.TokenHandle {
	h := b.handle()
	if b.buf.Kind(h) != token.EOF {
		b.cur++
	}
	return h
}

// match consumes and returns (handle, true) if the current token is tt,
// otherwise leaves the cursor untouched and returns (_, false).
func (b *Builder) match(tt token.Type) (source.TokenHandle, bool) {
	if b.kind() != tt {
		return source.TokenHandle{}, false
	}
	return b.advance(), true
}

// expect consumes the current token if it is tt, reporting "expected ...,
// got ..." and invoking the installed panic consumer otherwise.
func (b *Builder) expect(tt token.Type) (source.TokenHandle, bool) {
	if h, ok := b.match(tt); ok {
		return h, true
	}
	b.errorf(b.rangeHere(), "expected %s, got %s instead", tt, b.kind())
	b.panicConsume()
	return source.TokenHandle{}, false
}

// rangeHere returns a single-token range at the cursor.
func (b *Builder) rangeHere() source.TokenRange {
	h := b.handle()
	return b.buf.RangeFrom(h, h)
}

// rangeAt builds a range from a remembered start position up to (but not
// including) the current cursor, falling back to rangeHere if the cursor
// has not advanced since start.
func (b *Builder) rangeAt(start token.Position) source.TokenRange {
	startIdx := b.cur
	for startIdx > 0 && b.buf.At(source.TokenHandle{Index: startIdx}).Pos != start {
		startIdx--
	}
	if startIdx >= b.cur {
		return b.rangeHere()
	}
	startH := source.TokenHandle{Index: startIdx}
	endH := source.TokenHandle{Index: b.cur - 1}
	return b.buf.RangeFrom(startH, endH)
}

// infoAt reconstructs a diagnostic excerpt for the token at pos by
// scanning backward for the matching handle; used from recovery paths
// that only have a remembered Position.
func (b *Builder) infoAt(pos token.Position) *source.SourceInfo {
	for i := b.cur; i >= 0; i-- {
		h := source.TokenHandle{Index: i}
		if b.buf.At(h).Pos == pos {
			info := b.buf.SourceInfo(h)
			return &info
		}
	}
	return nil
}
