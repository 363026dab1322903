package token

// keywords maps reserved identifier spellings to their lexeme kind. The
// lexer consults this table once per identifier; Go's map gives the
// constant-ish lookup the spec describes as a "compile-time perfect-hash
// map" without hand-rolling one.
var keywords = map[string]Type{
	"let": LET, "var": VAR, "mut": MUT,
	"if": IF, "elif": ELIF, "else": ELSE,
	"true": TRUE, "false": FALSE, "undefined": UNDEFINED,
	"as": AS, "bit_as": BITAS,
	"public": PUBLIC, "private": PRIVATE,
	"fn": FN, "return": RETURN, "unit": UNIT,
	"bool": BOOL, "char": CHARTYPE,
	"i8": I8, "i16": I16, "i32": I32, "i64": I64,
	"u8": U8, "u16": U16, "u32": U32, "u64": U64,
	"f32": F32, "f64": F64,
	"byte": BYTE, "word": WORD, "dword": DWORD, "qword": QWORD,
	"void": VOIDTYPE,
}

// LookupIdent returns the keyword kind for ident, or IDENT if ident is not
// reserved.
func LookupIdent(ident string) Type {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// IsReservedUnderscorePrefix reports whether ident begins with the
// triple-underscore prefix the lexer reserves for internal use (§4.1).
func IsReservedUnderscorePrefix(ident string) bool {
	return len(ident) >= 3 && ident[0] == '_' && ident[1] == '_' && ident[2] == '_'
}

// ByteFamily reports whether tt is one of the raw-storage types that are
// the only legal endpoints of a bit_as cast.
func (tt Type) ByteFamily() bool {
	switch tt {
	case BYTE, WORD, DWORD, QWORD:
		return true
	default:
		return false
	}
}
