// Package types implements the type buffer and type variants (§3.3): a
// registry of interned built-in types, pointer/opaque-pointer variants
// over them, and the error-type sentinel, queried through supports/
// castable_to rather than exposed as a Go interface hierarchy.
package types

import "github.com/colt-lang/coltc/pkg/token"

// Kind discriminates a type variant.
type Kind uint8

const (
	KindError Kind = iota
	KindBool
	KindChar
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindByte
	KindWord
	KindDword
	KindQword
	KindVoid
	KindPointer
	KindMutPointer
	KindOpaquePointer
	KindMutOpaquePointer
)

// Token is a compact handle into a Table, the unit every other component
// uses to refer to a type instead of holding a pointer to it.
type Token int32

// Invalid is the zero-value handle; Table reserves index 0 for the error
// type so a zero Token is always a safe, if useless, handle.
var Invalid = Token(0)

// Variant is the interned representation a Token resolves to. Pointee is
// only meaningful for the four pointer kinds.
type Variant struct {
	Kind    Kind
	Pointee Token
}

// Outcome classifies the result of an operator-support or convertibility
// query.
type Outcome int

const (
	Invalid Outcome = iota
	Builtin
	InvalidOp
	InvalidType
)

type pointerKey struct {
	kind    Kind
	pointee Token
}

// Table interns every type variant a compilation run touches. Built-ins
// are pre-seeded at construction so their handles are stable constants;
// pointer variants are interned lazily and deduplicated by (kind, pointee).
type Table struct {
	variants []Variant
	byKind   map[Kind]Token // built-in kind -> handle
	byPtr    map[pointerKey]Token

	Bool, Char                                 Token
	I8, I16, I32, I64                          Token
	U8, U16, U32, U64                          Token
	F32, F64                                   Token
	Byte, Word, Dword, Qword                   Token
	Void                                       Token
	ErrorType                                  Token
}

// NewTable builds a Table with every built-in type pre-interned.
func NewTable() *Table {
	t := &Table{
		byKind: make(map[Kind]Token),
		byPtr:  make(map[pointerKey]Token),
	}
	t.ErrorType = t.internBuiltin(KindError)
	t.Bool = t.internBuiltin(KindBool)
	t.Char = t.internBuiltin(KindChar)
	t.I8 = t.internBuiltin(KindI8)
	t.I16 = t.internBuiltin(KindI16)
	t.I32 = t.internBuiltin(KindI32)
	t.I64 = t.internBuiltin(KindI64)
	t.U8 = t.internBuiltin(KindU8)
	t.U16 = t.internBuiltin(KindU16)
	t.U32 = t.internBuiltin(KindU32)
	t.U64 = t.internBuiltin(KindU64)
	t.F32 = t.internBuiltin(KindF32)
	t.F64 = t.internBuiltin(KindF64)
	t.Byte = t.internBuiltin(KindByte)
	t.Word = t.internBuiltin(KindWord)
	t.Dword = t.internBuiltin(KindDword)
	t.Qword = t.internBuiltin(KindQword)
	t.Void = t.internBuiltin(KindVoid)
	return t
}

func (t *Table) internBuiltin(k Kind) Token {
	h := Token(len(t.variants))
	t.variants = append(t.variants, Variant{Kind: k})
	t.byKind[k] = h
	return h
}

// Of looks up the handle for a pre-interned built-in kind.
func (t *Table) Of(k Kind) Token { return t.byKind[k] }

// Pointer interns (or returns the existing handle for) a pointer-to-pointee
// variant, mutable selecting between Pointer and MutPointer.
func (t *Table) Pointer(pointee Token, mutable bool) Token {
	k := KindPointer
	if mutable {
		k = KindMutPointer
	}
	return t.internPointer(k, pointee)
}

// OpaquePointer interns an opaque pointer variant, which carries no
// pointee (its Pointee field is always Invalid).
func (t *Table) OpaquePointer(mutable bool) Token {
	k := KindOpaquePointer
	if mutable {
		k = KindMutOpaquePointer
	}
	return t.internPointer(k, Invalid)
}

func (t *Table) internPointer(k Kind, pointee Token) Token {
	key := pointerKey{kind: k, pointee: pointee}
	if h, ok := t.byPtr[key]; ok {
		return h
	}
	h := Token(len(t.variants))
	t.variants = append(t.variants, Variant{Kind: k, Pointee: pointee})
	t.byPtr[key] = h
	return h
}

// Variant returns the interned variant for h.
func (t *Table) Variant(h Token) Variant { return t.variants[h] }

// Kind is a shorthand for Variant(h).Kind.
func (t *Table) Kind(h Token) Kind { return t.variants[h].Kind }

func (k Kind) isSignedInt() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	default:
		return false
	}
}

func (k Kind) isUnsignedInt() bool {
	switch k {
	case KindU8, KindU16, KindU32, KindU64:
		return true
	default:
		return false
	}
}

func (k Kind) isByteFamily() bool {
	switch k {
	case KindByte, KindWord, KindDword, KindQword:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is any integer kind, including the raw
// byte-family storage types.
func (k Kind) IsInteger() bool { return k.isSignedInt() || k.isUnsignedInt() || k.isByteFamily() }

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool { return k == KindF32 || k == KindF64 }

// IsPointer reports whether k is any of the four pointer variants.
func (k Kind) IsPointer() bool {
	switch k {
	case KindPointer, KindMutPointer, KindOpaquePointer, KindMutOpaquePointer:
		return true
	default:
		return false
	}
}

// IsOpaque reports whether k is one of the two opaque pointer variants,
// which may not be pointer-loaded (§4.1 "*p ... only on non-opaque pointer
// types").
func (k Kind) IsOpaque() bool { return k == KindOpaquePointer || k == KindMutOpaquePointer }

// IsMutablePointer reports whether k is a mutable (non-opaque or opaque)
// pointer variant — the only kinds a pointer-store target may have.
func (k Kind) IsMutablePointer() bool { return k == KindMutPointer || k == KindMutOpaquePointer }

// SupportsUnary answers supports(UnaryOp) for h (§3.3, §4.4.2).
func (t *Table) SupportsUnary(h Token, op token.Type) Outcome {
	k := t.Kind(h)
	switch op {
	case token.MINUS:
		if k.isSignedInt() || k.IsFloat() {
			return Builtin
		}
	case token.BANG:
		if k == KindBool {
			return Builtin
		}
	case token.TILDE:
		if k.IsInteger() {
			return Builtin
		}
	case token.STAR:
		if k.IsPointer() && !k.IsOpaque() {
			return Builtin
		}
	case token.AMP:
		// Address-of is structural: any addressable operand's type
		// supports it. Lvalue-ness is enforced by the builder, not here.
		return Builtin
	}
	return Invalid
}

// SupportsBinary answers supports(BinaryOp, other) for h ⊕ other (§3.3,
// §4.4.2). It distinguishes "this type doesn't support ⊕ at all"
// (InvalidOp) from "this type supports ⊕ but not with that operand type"
// (InvalidType).
func (t *Table) SupportsBinary(h Token, op token.Type, other Token) Outcome {
	k := t.Kind(h)
	ok := t.Kind(other)

	switch op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		if !(k.IsInteger() || k.IsFloat()) {
			return InvalidOp
		}
		if k != ok {
			return InvalidType
		}
		return Builtin
	case token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR:
		if !k.IsInteger() {
			return InvalidOp
		}
		if k != ok {
			return InvalidType
		}
		return Builtin
	case token.ANDAND, token.OROR:
		if k != KindBool {
			return InvalidOp
		}
		if ok != KindBool {
			return InvalidType
		}
		return Builtin
	case token.LT, token.LE, token.EQ, token.GT, token.GE, token.NE:
		if k.IsPointer() {
			if ok != k {
				return InvalidType
			}
			return Builtin
		}
		if !(k.IsInteger() || k.IsFloat() || k == KindBool || k == KindChar) {
			return InvalidOp
		}
		if k != ok {
			return InvalidType
		}
		return Builtin
	}
	return InvalidOp
}

// CastableTo answers castable_to(other) for an `as` cast from h (§3.3,
// §4.4.2). Built-in numeric kinds interconvert freely; pointer kinds may
// only convert to another pointer kind with an identical pointee, or to/
// from their opaque counterpart.
func (t *Table) CastableTo(h, other Token) Outcome {
	k, ok := t.Kind(h), t.Kind(other)

	switch {
	case k == KindVoid || ok == KindVoid || k == KindError || ok == KindError:
		return Invalid
	case (k.IsInteger() || k.IsFloat() || k == KindBool || k == KindChar) &&
		(ok.IsInteger() || ok.IsFloat() || ok == KindBool || ok == KindChar):
		return Builtin
	case k.IsPointer() && ok.IsPointer():
		if k.IsOpaque() || ok.IsOpaque() {
			return Builtin
		}
		if t.variants[h].Pointee == t.variants[other].Pointee {
			return Builtin
		}
		return Invalid
	default:
		return Invalid
	}
}

// BitAsAllowed enforces the byte-family constraint bit_as adds on top of
// castable_to: source or destination must be one of byte/word/dword/qword.
func (t *Table) BitAsAllowed(h, other Token) bool {
	return t.Kind(h).isByteFamily() || t.Kind(other).isByteFamily()
}
