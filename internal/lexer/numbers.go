package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

// handleNumber parses an integer or float literal: decimal, or 0x/0b/0o
// prefixed integers, optionally followed by a type suffix (u8/u16/u32/u64,
// i8/i16/i32/i64 for integers; f/d for floats). A literal that parses but
// overflows its target width is still emitted as a token so the rest of
// the file keeps lexing; the overflow is reported as an error (§8: "a
// literal exactly at the signed 64-bit boundary parses; one past it does
// not").
func (l *Lexer) handleNumber() (source.TokenHandle, bool) {
	startLine, startCol := l.line, l.col
	var raw strings.Builder

	base := 10
	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		base = 16
		raw.WriteRune(l.ch)
		l.advance()
		raw.WriteRune(l.ch)
		l.advance()
	} else if l.ch == '0' && (l.peek() == 'b' || l.peek() == 'B') {
		base = 2
		raw.WriteRune(l.ch)
		l.advance()
		raw.WriteRune(l.ch)
		l.advance()
	} else if l.ch == '0' && (l.peek() == 'o' || l.peek() == 'O') {
		base = 8
		raw.WriteRune(l.ch)
		l.advance()
		raw.WriteRune(l.ch)
		l.advance()
	}

	isFloat := false
	for isDigitForBase(l.ch, base) || l.ch == '_' {
		if l.ch != '_' {
			raw.WriteRune(l.ch)
		}
		l.advance()
	}
	if base == 10 && l.ch == '.' && isASCIIDigit(l.peek()) {
		isFloat = true
		raw.WriteRune(l.ch)
		l.advance()
		for isASCIIDigit(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				raw.WriteRune(l.ch)
			}
			l.advance()
		}
	}
	if base == 10 && (l.ch == 'e' || l.ch == 'E') {
		isFloat = true
		raw.WriteRune(l.ch)
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			raw.WriteRune(l.ch)
			l.advance()
		}
		for isASCIIDigit(l.ch) {
			raw.WriteRune(l.ch)
			l.advance()
		}
	}

	suffix := l.readSuffix(isFloat)
	length := l.col - startCol
	pos := token.Position{Line: startLine, Column: startCol, Length: length}
	text := raw.String()

	if isFloat || suffix == "f" || suffix == "d" {
		return l.emitFloatLiteral(text, suffix, pos)
	}
	return l.emitIntLiteral(text, base, suffix, pos)
}

func isDigitForBase(r rune, base int) bool {
	switch base {
	case 16:
		return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	case 8:
		return r >= '0' && r <= '7'
	case 2:
		return r == '0' || r == '1'
	default:
		return isASCIIDigit(r)
	}
}

// readSuffix consumes a trailing type suffix (u8,u16,u32,u64,i8,i16,i32,i64,f,d)
// if one is present.
func (l *Lexer) readSuffix(isFloat bool) string {
	if isFloat {
		if l.ch == 'f' || l.ch == 'd' {
			s := string(l.ch)
			l.advance()
			return s
		}
		return ""
	}
	if l.ch != 'u' && l.ch != 'i' {
		return ""
	}
	var sb strings.Builder
	sb.WriteRune(l.ch)
	l.advance()
	for isASCIIDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	switch sb.String() {
	case "u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64":
		return sb.String()
	default:
		return ""
	}
}

// intSuffixToken maps a parsed integer suffix to the builtin-type token it
// selects (§4.1). An absent suffix defaults to 64-bit signed for decimal
// literals, and to 64-bit unsigned for prefixed (0x/0b/0o) literals.
func intSuffixToken(suffix string, base int) token.Type {
	switch suffix {
	case "u8":
		return token.U8
	case "u16":
		return token.U16
	case "u32":
		return token.U32
	case "u64":
		return token.U64
	case "i8":
		return token.I8
	case "i16":
		return token.I16
	case "i32":
		return token.I32
	case "i64":
		return token.I64
	default:
		if base == 10 {
			return token.I64
		}
		return token.U64
	}
}

// floatSuffixToken maps a parsed float suffix to the builtin-type token it
// selects: "f" is 32-bit, "d" or no suffix is 64-bit (§4.1).
func floatSuffixToken(suffix string) token.Type {
	if suffix == "f" {
		return token.F32
	}
	return token.F64
}

func (l *Lexer) emitIntLiteral(text string, base int, suffix string, pos token.Position) (source.TokenHandle, bool) {
	// shopspring/decimal gives us an exact, width-independent parse so we
	// can tell "overflowed i64" apart from "malformed literal" before ever
	// touching a fixed-width Go integer.
	var magnitude decimal.Decimal
	var err error
	if base == 10 {
		magnitude, err = decimal.NewFromString(text)
	} else {
		var u uint64
		u, err = strconv.ParseUint(text[2:], base, 64)
		magnitude = decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
	}
	if err != nil {
		l.rep.Error("invalid integer literal", nil, 0)
		return l.buf.AppendLiteral(0, token.INT, token.ILLEGAL, pos), true
	}

	limit := decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
	if magnitude.GreaterThan(limit) {
		l.rep.Error("integer literal out of range", nil, 0)
		return l.buf.AppendLiteral(0, token.INT, token.ILLEGAL, pos), true
	}
	bits64 := magnitude.BigInt().Uint64()

	typeName := suffix
	if typeName == "" {
		typeName = "i64"
		if base != 10 {
			typeName = "u64"
		}
	}
	width, _ := strconv.Atoi(typeName[1:])
	maxVal := uint64(math.MaxUint64) >> (64 - width)
	if typeName[0] == 'i' {
		maxVal >>= 1
	}
	if bits64 > maxVal {
		l.rep.Error("integer literal out of range for "+typeName, nil, 0)
	}
	return l.buf.AppendLiteral(bits64, token.INT, intSuffixToken(suffix, base), pos), true
}

func (l *Lexer) emitFloatLiteral(text, suffix string, pos token.Position) (source.TokenHandle, bool) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.rep.Error("invalid float literal", nil, 0)
		return l.buf.AppendLiteral(0, token.FLOAT, token.ILLEGAL, pos), true
	}
	suffixTok := floatSuffixToken(suffix)
	if suffixTok == token.F32 {
		f32 := float32(f)
		return l.buf.AppendLiteral(uint64(math.Float32bits(f32)), token.FLOAT, token.F32, pos), true
	}
	return l.buf.AppendLiteral(math.Float64bits(f), token.FLOAT, token.F64, pos), true
}
