package builder

import (
	"math"

	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// foldWarn classifies the non-fatal conditions constant folding can flag
// (§4.4.4); each is gated by a WarnFor flag except division-by-zero,
// which foldBinary reports out-of-band as always-an-error.
type foldWarn int

const (
	foldNone foldWarn = iota
	foldNaNInput
	foldNaNOutput
	foldSignedOU
	foldUnsignedOU
	foldInvalidShift
)

func isSignedKind(k types.Kind) bool {
	switch k {
	case types.KindI8, types.KindI16, types.KindI32, types.KindI64:
		return true
	default:
		return false
	}
}

func isUnsignedOrByteKind(k types.Kind) bool {
	switch k {
	case types.KindU8, types.KindU16, types.KindU32, types.KindU64,
		types.KindByte, types.KindWord, types.KindDword, types.KindQword:
		return true
	default:
		return false
	}
}

// bitWidth returns the storage width of an integer kind, used to bound
// overflow checks and to gate "shift >= bit width" (§4.4.4).
func bitWidth(k types.Kind) int {
	switch k {
	case types.KindI8, types.KindU8, types.KindByte:
		return 8
	case types.KindI16, types.KindU16, types.KindWord:
		return 16
	case types.KindI32, types.KindU32, types.KindDword:
		return 32
	default:
		return 64
	}
}

// foldBinary evaluates a built-in binary operator over two literal 64-bit
// payloads of kind k, dispatching by k's numeric family the way the spec's
// "64-bit slot operator" does (§4.4.4). divByZero reports the
// division-by-zero condition, which is always an error regardless of
// WarnFor.
func foldBinary(op token.Type, k types.Kind, a, b uint64) (result uint64, warn foldWarn, divByZero bool) {
	switch {
	case k.IsFloat():
		return foldFloatBinary(op, k, a, b)
	case isSignedKind(k):
		return foldSignedBinary(op, k, a, b, bitWidth(k))
	case isUnsignedOrByteKind(k):
		return foldUnsignedBinary(op, k, a, b, bitWidth(k))
	case k == types.KindBool:
		return foldBoolBinary(op, a, b), foldNone, false
	default:
		return 0, foldNone, false
	}
}

func foldFloatBinary(op token.Type, k types.Kind, a, b uint64) (uint64, foldWarn, bool) {
	var x, y float64
	if k == types.KindF32 {
		x = float64(math.Float32frombits(uint32(a)))
		y = float64(math.Float32frombits(uint32(b)))
	} else {
		x = math.Float64frombits(a)
		y = math.Float64frombits(b)
	}

	warn := foldNone
	if math.IsNaN(x) || math.IsNaN(y) {
		warn = foldNaNInput
	}

	var r float64
	divByZero := false
	switch op {
	case token.PLUS:
		r = x + y
	case token.MINUS:
		r = x - y
	case token.STAR:
		r = x * y
	case token.SLASH:
		r = x / y
	case token.LT:
		return boolBits(x < y), foldNone, false
	case token.LE:
		return boolBits(x <= y), foldNone, false
	case token.EQ:
		return boolBits(x == y), foldNone, false
	case token.GT:
		return boolBits(x > y), foldNone, false
	case token.GE:
		return boolBits(x >= y), foldNone, false
	case token.NE:
		return boolBits(x != y), foldNone, false
	default:
		return 0, foldNone, false
	}

	if warn == foldNone && math.IsNaN(r) {
		warn = foldNaNOutput
	}
	if k == types.KindF32 {
		return uint64(math.Float32bits(float32(r))), warn, divByZero
	}
	return math.Float64bits(r), warn, divByZero
}

func foldSignedBinary(op token.Type, k types.Kind, a, b uint64, width int) (uint64, foldWarn, bool) {
	x, y := int64(a), int64(b)

	inRange := func(v int64) bool {
		if width >= 64 {
			return true
		}
		lo, hi := -(int64(1) << (width - 1)), (int64(1)<<(width-1))-1
		return v >= lo && v <= hi
	}

	switch op {
	case token.PLUS:
		r := x + y
		if !inRange(r) || (y > 0 && r < x) || (y < 0 && r > x) {
			return uint64(r), foldSignedOU, false
		}
		return uint64(r), foldNone, false
	case token.MINUS:
		r := x - y
		if !inRange(r) || (y < 0 && r < x) || (y > 0 && r > x) {
			return uint64(r), foldSignedOU, false
		}
		return uint64(r), foldNone, false
	case token.STAR:
		r := x * y
		if !inRange(r) || (x != 0 && (r/x != y || (x == -1 && y == math.MinInt64))) {
			return uint64(r), foldSignedOU, false
		}
		return uint64(r), foldNone, false
	case token.SLASH:
		if y == 0 {
			return 0, foldNone, true
		}
		return uint64(x / y), foldNone, false
	case token.PERCENT:
		if y == 0 {
			return 0, foldNone, true
		}
		return uint64(x % y), foldNone, false
	case token.AMP:
		return uint64(x & y), foldNone, false
	case token.PIPE:
		return uint64(x | y), foldNone, false
	case token.CARET:
		return uint64(x ^ y), foldNone, false
	case token.SHL:
		if y < 0 || y >= int64(width) {
			return uint64(x), foldInvalidShift, false
		}
		return uint64(x << uint(y)), foldNone, false
	case token.SHR:
		if y < 0 || y >= int64(width) {
			return uint64(x), foldInvalidShift, false
		}
		return uint64(x >> uint(y)), foldNone, false
	case token.LT:
		return boolBits(x < y), foldNone, false
	case token.LE:
		return boolBits(x <= y), foldNone, false
	case token.EQ:
		return boolBits(x == y), foldNone, false
	case token.GT:
		return boolBits(x > y), foldNone, false
	case token.GE:
		return boolBits(x >= y), foldNone, false
	case token.NE:
		return boolBits(x != y), foldNone, false
	default:
		return 0, foldNone, false
	}
}

func foldUnsignedBinary(op token.Type, k types.Kind, a, b uint64, width int) (uint64, foldWarn, bool) {
	mask := uint64(math.MaxUint64)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}

	switch op {
	case token.PLUS:
		r := a + b
		if r&^mask != 0 || r < a {
			return r & mask, foldUnsignedOU, false
		}
		return r, foldNone, false
	case token.MINUS:
		r := a - b
		if b > a {
			return r & mask, foldUnsignedOU, false
		}
		return r, foldNone, false
	case token.STAR:
		r := a * b
		if (a != 0 && r/a != b) || r&^mask != 0 {
			return r & mask, foldUnsignedOU, false
		}
		return r, foldNone, false
	case token.SLASH:
		if b == 0 {
			return 0, foldNone, true
		}
		return a / b, foldNone, false
	case token.PERCENT:
		if b == 0 {
			return 0, foldNone, true
		}
		return a % b, foldNone, false
	case token.AMP:
		return a & b, foldNone, false
	case token.PIPE:
		return a | b, foldNone, false
	case token.CARET:
		return a ^ b, foldNone, false
	case token.SHL:
		if b >= uint64(width) {
			return a, foldInvalidShift, false
		}
		return (a << b) & mask, foldNone, false
	case token.SHR:
		if b >= uint64(width) {
			return a, foldInvalidShift, false
		}
		return a >> b, foldNone, false
	case token.LT:
		return boolBits(a < b), foldNone, false
	case token.LE:
		return boolBits(a <= b), foldNone, false
	case token.EQ:
		return boolBits(a == b), foldNone, false
	case token.GT:
		return boolBits(a > b), foldNone, false
	case token.GE:
		return boolBits(a >= b), foldNone, false
	case token.NE:
		return boolBits(a != b), foldNone, false
	default:
		return 0, foldNone, false
	}
}

func foldBoolBinary(op token.Type, a, b uint64) uint64 {
	x, y := a != 0, b != 0
	switch op {
	case token.ANDAND:
		return boolBits(x && y)
	case token.OROR:
		return boolBits(x || y)
	case token.EQ:
		return boolBits(x == y)
	case token.NE:
		return boolBits(x != y)
	default:
		return 0
	}
}

// foldCast evaluates a built-in cast over a literal payload of kind
// srcKind, converting it to dstKind the way the runtime cast does
// (§4.4.4: "cast fold work analogously" to binary fold). bit_as keeps the
// literal's raw 64-bit payload unchanged: it reinterprets the bits rather
// than converting the value. Only one endpoint has to be byte-family; the
// two types' widths are not compared.
func foldCast(as token.Type, srcKind, dstKind types.Kind, value uint64) (result uint64, warn foldWarn) {
	if as == token.BITAS {
		return value, foldNone
	}

	var f float64
	switch {
	case srcKind.IsFloat():
		if srcKind == types.KindF32 {
			f = float64(math.Float32frombits(uint32(value)))
		} else {
			f = math.Float64frombits(value)
		}
	case isSignedKind(srcKind):
		f = float64(int64(value))
	default:
		f = float64(value)
	}

	if dstKind.IsFloat() {
		if math.IsNaN(f) {
			warn = foldNaNInput
		}
		if dstKind == types.KindF32 {
			return uint64(math.Float32bits(float32(f))), warn
		}
		return math.Float64bits(f), warn
	}

	if dstKind == types.KindBool {
		return boolBits(f != 0), foldNone
	}

	i := int64(f)
	width := bitWidth(dstKind)
	if isSignedKind(dstKind) {
		if width < 64 {
			lo, hi := -(int64(1)<<(width-1)), (int64(1)<<(width-1))-1
			if i < lo || i > hi {
				warn = foldSignedOU
			}
		}
		return uint64(i), warn
	}

	u := uint64(i)
	if width < 64 {
		mask := (uint64(1) << width) - 1
		if u&^mask != 0 {
			warn = foldUnsignedOU
		}
		u &= mask
	}
	return u, warn
}

func boolBits(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// foldUnary evaluates a built-in unary operator over a literal payload of
// kind k.
func foldUnary(op token.Type, k types.Kind, a uint64) (result uint64, warn foldWarn) {
	switch {
	case k.IsFloat() && op == token.MINUS:
		if k == types.KindF32 {
			f := math.Float32frombits(uint32(a))
			return uint64(math.Float32bits(-f)), foldNone
		}
		f := math.Float64frombits(a)
		return math.Float64bits(-f), foldNone
	case isSignedKind(k) && op == token.MINUS:
		width := bitWidth(k)
		x := int64(a)
		r := -x
		if width < 64 && (r < -(int64(1)<<(width-1)) || r > (int64(1)<<(width-1))-1) {
			return uint64(r), foldSignedOU
		}
		return uint64(r), foldNone
	case k == types.KindBool && op == token.BANG:
		return boolBits(a == 0), foldNone
	case k.IsInteger() && op == token.TILDE:
		return ^a, foldNone
	default:
		return a, foldNone
	}
}
