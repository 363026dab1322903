package builder

import (
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// parseTypeAnnotation parses a type reference: a built-in type keyword,
// or `*type`/`*mut type` for a pointer to one (mutability is a leading
// `mut` right after the `*`, matching the `var mut`/`let mut` ordering
// used for local declarations). No annotation form names an opaque
// pointer, and no builder path creates an opaque pointer type; one exists
// only if a caller interns it through types.Table.OpaquePointer.
func (b *Builder) parseTypeAnnotation() (types.Token, bool) {
	if b.kind() == token.STAR {
		b.advance()
		mutable := false
		if b.kind() == token.MUT {
			mutable = true
			b.advance()
		}
		pointee, ok := b.parseTypeAnnotation()
		if !ok {
			return types.Invalid, false
		}
		return b.types.Pointer(pointee, mutable), true
	}

	if tt := b.kind(); tt.IsBuiltinType() {
		b.advance()
		return b.builtinTypeToken(tt), true
	}

	b.errorf(b.rangeHere(), "expected a type, got %s instead", b.kind())
	b.panicConsume()
	return types.Invalid, false
}

func (b *Builder) builtinTypeToken(tt token.Type) types.Token {
	switch tt {
	case token.BOOL:
		return b.types.Bool
	case token.CHARTYPE:
		return b.types.Char
	case token.I8:
		return b.types.I8
	case token.I16:
		return b.types.I16
	case token.I32:
		return b.types.I32
	case token.I64:
		return b.types.I64
	case token.U8:
		return b.types.U8
	case token.U16:
		return b.types.U16
	case token.U32:
		return b.types.U32
	case token.U64:
		return b.types.U64
	case token.F32:
		return b.types.F32
	case token.F64:
		return b.types.F64
	case token.BYTE:
		return b.types.Byte
	case token.WORD:
		return b.types.Word
	case token.DWORD:
		return b.types.Dword
	case token.QWORD:
		return b.types.Qword
	case token.VOIDTYPE:
		return b.types.Void
	default:
		return b.types.ErrorType
	}
}
