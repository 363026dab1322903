// Package token defines the lexeme kinds, source positions, and token values
// shared by the lexer, the token buffer and the AST builder.
package token

import "fmt"

// Type is a tagged enum over the lexeme kinds produced by the lexer.
// Kinds are grouped into contiguous numeric ranges so membership tests
// (IsLiteral, IsKeyword, IsBuiltinType, IsUnary, IsBinary, IsComparison,
// IsDelimiter) are range compares rather than table lookups.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	COMMENT

	literalBegin
	INT    // 123, 0x7F, 0b1010, 0o17
	FLOAT  // 1.5, 1e10
	STRING // "..."
	CHAR   // 'a', #65
	literalEnd

	IDENT

	keywordBegin
	LET
	VAR
	MUT
	IF
	ELIF
	ELSE
	TRUE
	FALSE
	UNDEFINED
	AS
	BITAS
	PUBLIC
	PRIVATE
	FN
	RETURN
	UNIT
	keywordEnd

	builtinTypeBegin
	BOOL
	CHARTYPE
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	BYTE
	WORD
	DWORD
	QWORD
	VOIDTYPE
	builtinTypeEnd

	// unary-eligible operators: address-of, pointer-load/multiply, unary
	// plus/minus, logical-not, bitwise-not. Per §6.4 these precede the
	// other binary-only operators.
	unaryOpBegin
	AMP   // &
	STAR  // *
	PLUS  // +
	MINUS // -
	BANG  // !
	TILDE // ~
	unaryOpEnd

	// other binary-only operators.
	binaryOpBegin
	SLASH   // /
	PERCENT // %
	SHL     // <<
	SHR     // >>
	PIPE    // |
	CARET   // ^
	ANDAND  // &&
	OROR    // ||
	binaryOpEnd

	// comparison operators, grouped into the four comparison sets used by
	// comparison-chain desugaring (§4.4.3): {<,<=} {==} {>,>=} {!=}.
	comparisonBegin
	LT // <
	LE // <=
	EQ // ==
	GT // >
	GE // >=
	NE // !=
	comparisonEnd

	ASSIGN // = (plain assignment; compound forms are offset, see below)

	delimiterBegin
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COLON
	COMMA
	DOT
	DOTDOT
	ARROW
	delimiterEnd
)

// assignOffset separates compound-assignment kinds from their non-assign
// base by a fixed numeric offset (§3.1): CompoundAssign(PLUS) == PLUS+assignOffset.
const assignOffset Type = 1000

const (
	PLUS_ASSIGN    = PLUS + assignOffset
	MINUS_ASSIGN   = MINUS + assignOffset
	STAR_ASSIGN    = STAR + assignOffset
	SLASH_ASSIGN   = SLASH + assignOffset
	PERCENT_ASSIGN = PERCENT + assignOffset
	AMP_ASSIGN     = AMP + assignOffset
	PIPE_ASSIGN    = PIPE + assignOffset
	CARET_ASSIGN   = CARET + assignOffset
	SHL_ASSIGN     = SHL + assignOffset
	SHR_ASSIGN     = SHR + assignOffset
)

// IsLiteral reports whether tt is a literal-kind token.
func (tt Type) IsLiteral() bool { return tt > literalBegin && tt < literalEnd }

// IsKeyword reports whether tt is a reserved keyword.
func (tt Type) IsKeyword() bool { return tt > keywordBegin && tt < keywordEnd }

// IsBuiltinType reports whether tt names a built-in type.
func (tt Type) IsBuiltinType() bool { return tt > builtinTypeBegin && tt < builtinTypeEnd }

// IsUnary reports whether tt can appear in prefix-unary position.
func (tt Type) IsUnary() bool { return tt > unaryOpBegin && tt < unaryOpEnd }

// IsBinary reports whether tt is a binary-only arithmetic/bitwise/logical operator.
func (tt Type) IsBinary() bool { return tt > binaryOpBegin && tt < binaryOpEnd }

// IsComparison reports whether tt is a comparison operator.
func (tt Type) IsComparison() bool { return tt > comparisonBegin && tt < comparisonEnd }

// IsCompoundAssignment reports whether tt is a compound-assignment kind
// (+=, -=, ...).
func (tt Type) IsCompoundAssignment() bool {
	return tt > assignOffset && tt < assignOffset+delimiterEnd
}

// IsAssignment reports whether tt is the plain or a compound assignment operator.
func (tt Type) IsAssignment() bool { return tt == ASSIGN || tt.IsCompoundAssignment() }

// IsDelimiter reports whether tt is a punctuation delimiter.
func (tt Type) IsDelimiter() bool { return tt > delimiterBegin && tt < delimiterEnd }

// CompoundBase returns the non-assign base kind of a compound-assignment
// token, or ILLEGAL if tt is not a compound assignment.
func (tt Type) CompoundBase() Type {
	if !tt.IsCompoundAssignment() {
		return ILLEGAL
	}
	return tt - assignOffset
}

// ComparisonSet identifies which of the four comparison-chain sets an
// operator belongs to (§4.4.3).
type ComparisonSet int

const (
	SetNone ComparisonSet = iota
	SetLess
	SetEqual
	SetGreater
	SetNotEqual
)

// Set returns the comparison-chain set tt belongs to, or SetNone if tt is
// not a comparison operator.
func (tt Type) Set() ComparisonSet {
	switch tt {
	case LT, LE:
		return SetLess
	case EQ:
		return SetEqual
	case GT, GE:
		return SetGreater
	case NE:
		return SetNotEqual
	default:
		return SetNone
	}
}

var typeStrings = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	INT: "INT", FLOAT: "FLOAT", STRING: "STRING", CHAR: "CHAR",
	IDENT: "IDENT",
	LET:   "let", VAR: "var", MUT: "mut", IF: "if", ELIF: "elif", ELSE: "else",
	TRUE: "true", FALSE: "false", UNDEFINED: "undefined", AS: "as", BITAS: "bit_as",
	PUBLIC: "public", PRIVATE: "private", FN: "fn", RETURN: "return", UNIT: "unit",
	BOOL: "bool", CHARTYPE: "char", I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", F32: "f32", F64: "f64",
	BYTE: "byte", WORD: "word", DWORD: "dword", QWORD: "qword", VOIDTYPE: "void",
	AMP: "&", STAR: "*", PLUS: "+", MINUS: "-", BANG: "!", TILDE: "~",
	SLASH: "/", PERCENT: "%", SHL: "<<", SHR: ">>", PIPE: "|", CARET: "^",
	ANDAND: "&&", OROR: "||",
	LT: "<", LE: "<=", EQ: "==", GT: ">", GE: ">=", NE: "!=",
	ASSIGN: "=",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", SEMICOLON: ";", COLON: ":", COMMA: ",",
	DOT: ".", DOTDOT: "..", ARROW: "->",
}

// String returns the canonical spelling of tt, deriving compound-assignment
// spellings from their base operator.
func (tt Type) String() string {
	if tt.IsCompoundAssignment() {
		return tt.CompoundBase().String() + "="
	}
	if s, ok := typeStrings[tt]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(tt))
}

// Position is a 1-based line/column source location. Length is the lexeme's
// byte length; EndLine is set for tokens that span multiple lines.
type Position struct {
	Line    int
	Column  int
	Length  int
	EndLine int
}

// Token is a single lexeme: its kind, source location, and an optional
// payload index into the owning buffer's literal or identifier side table.
// Non-literal, non-identifier tokens leave Payload at -1.
type Token struct {
	Type    Type
	Pos     Position
	Payload int
}

// NewToken creates a token with no side-table payload.
func NewToken(tt Type, pos Position) Token {
	return Token{Type: tt, Pos: pos, Payload: -1}
}

// NewPayloadToken creates a token carrying a side-table payload index.
func NewPayloadToken(tt Type, pos Position, payload int) Token {
	return Token{Type: tt, Pos: pos, Payload: payload}
}

// HasPayload reports whether the token carries a valid side-table index.
func (t Token) HasPayload() bool { return t.Payload >= 0 }

func (t Token) String() string {
	return fmt.Sprintf("%s@%d:%d", t.Type, t.Pos.Line, t.Pos.Column)
}
