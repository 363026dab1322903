package builder

import (
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/module"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// parseExpression is the public entry point into the Pratt-precedence
// expression grammar (§4.4.1), bounded by the recursion guard since
// expressions nest through parenthesization.
func (b *Builder) parseExpression() expr.Prod {
	b.enter()
	defer b.exit()
	return b.parseAssignment()
}

// parseAssignment handles a leading assignment token turning the parsed
// left-hand side into a write expression (§4.4.1 "a leading assignment
// token produces an assignment expression").
func (b *Builder) parseAssignment() expr.Prod {
	left := b.parseLogicalOr()
	op := b.kind()
	if !op.IsAssignment() {
		return left
	}
	b.advance()
	right := b.parseAssignment()
	return b.buildAssign(left, op, right)
}

func (b *Builder) parseLogicalOr() expr.Prod {
	left := b.parseLogicalAnd()
	for b.kind() == token.OROR {
		start := b.peekPos()
		b.advance()
		right := b.parseLogicalAnd()
		left = b.buildLogical(b.rangeAt(start), token.OROR, left, right)
	}
	return left
}

func (b *Builder) parseLogicalAnd() expr.Prod {
	left := b.parseComparisonChain()
	for b.kind() == token.ANDAND {
		start := b.peekPos()
		b.advance()
		right := b.parseComparisonChain()
		left = b.buildLogical(b.rangeAt(start), token.ANDAND, left, right)
	}
	return left
}

// parseComparisonChain implements §4.4.3: a run of comparison operators
// desugars into a conjunction of pairwise comparisons, e.g.
// `a < b < c` becomes `(a < b) && (b < c)`.
func (b *Builder) parseComparisonChain() expr.Prod {
	left := b.parseBitwiseOr()
	if !b.kind().IsComparison() {
		return left
	}

	start := b.peekPos()
	op := b.kind()
	b.advance()
	rhs := b.parseBitwiseOr()
	result := b.buildComparison(b.rangeAt(start), op, left, rhs)

	chainSet := op.Set()
	prevRHS := rhs
	for b.kind().IsComparison() {
		nextOp := b.kind()
		nextSet := nextOp.Set()
		if nextSet != chainSet {
			b.errorf(b.rangeHere(), "'%s' cannot be chained with %s", nextOp, comparisonSetSpelling(chainSet))
		}
		opStart := b.peekPos()
		b.advance()
		nextRHS := b.parseBitwiseOr()
		link := b.buildComparison(b.rangeAt(opStart), nextOp, prevRHS, nextRHS)
		result = b.buildLogical(b.rangeAt(start), token.ANDAND, result, link)
		prevRHS = nextRHS
		op, chainSet = nextOp, nextSet
	}
	return result
}

// comparisonSetSpelling renders the operator spelling(s) of a comparison
// chain set for the "cannot be chained with" diagnostic (§8 scenario 4:
// "'==' cannot be chained with '<' or '<='").
func comparisonSetSpelling(set token.ComparisonSet) string {
	switch set {
	case token.SetLess:
		return "'<' or '<='"
	case token.SetGreater:
		return "'>' or '>='"
	case token.SetEqual:
		return "'=='"
	case token.SetNotEqual:
		return "'!='"
	default:
		return ""
	}
}

func (b *Builder) parseBitwiseOr() expr.Prod {
	left := b.parseBitwiseXor()
	for b.kind() == token.PIPE {
		start := b.peekPos()
		b.advance()
		right := b.parseBitwiseXor()
		left = b.buildBinary(b.rangeAt(start), token.PIPE, left, right)
	}
	return left
}

func (b *Builder) parseBitwiseXor() expr.Prod {
	left := b.parseBitwiseAnd()
	for b.kind() == token.CARET {
		start := b.peekPos()
		b.advance()
		right := b.parseBitwiseAnd()
		left = b.buildBinary(b.rangeAt(start), token.CARET, left, right)
	}
	return left
}

func (b *Builder) parseBitwiseAnd() expr.Prod {
	left := b.parseShift()
	for b.kind() == token.AMP {
		start := b.peekPos()
		b.advance()
		right := b.parseShift()
		left = b.buildBinary(b.rangeAt(start), token.AMP, left, right)
	}
	return left
}

func (b *Builder) parseShift() expr.Prod {
	left := b.parseAdditive()
	for b.kind() == token.SHL || b.kind() == token.SHR {
		op := b.kind()
		start := b.peekPos()
		b.advance()
		right := b.parseAdditive()
		left = b.buildBinary(b.rangeAt(start), op, left, right)
	}
	return left
}

func (b *Builder) parseAdditive() expr.Prod {
	left := b.parseMultiplicative()
	for b.kind() == token.PLUS || b.kind() == token.MINUS {
		op := b.kind()
		start := b.peekPos()
		b.advance()
		right := b.parseMultiplicative()
		left = b.buildBinary(b.rangeAt(start), op, left, right)
	}
	return left
}

func (b *Builder) parseMultiplicative() expr.Prod {
	left := b.parseUnaryUnit()
	for b.kind() == token.STAR || b.kind() == token.SLASH || b.kind() == token.PERCENT {
		op := b.kind()
		start := b.peekPos()
		b.advance()
		right := b.parseUnaryUnit()
		left = b.buildBinary(b.rangeAt(start), op, left, right)
	}
	return left
}

// parseUnaryUnit parses a single optional prefix operator over a
// primary-with-conversion (§4.4.1 "unary := unary-op primary"): `&x`
// becomes address-of, `*p` becomes pointer-load, unary `+` is rejected,
// `-`/`!`/`~` fold through the normal unary-support check.
func (b *Builder) parseUnaryUnit() expr.Prod {
	if !b.kind().IsUnary() {
		return b.parsePrimaryWithConversion()
	}
	op := b.kind()
	start := b.peekPos()
	b.advance()
	operand := b.parsePrimaryWithConversion()
	return b.buildUnary(b.rangeAt(start), op, operand)
}

// parsePrimaryWithConversion parses a primary expression, then an
// optional trailing `as`/`bit_as` type conversion (§4.4.1).
func (b *Builder) parsePrimaryWithConversion() expr.Prod {
	operand := b.parsePrimary()
	if b.kind() != token.AS && b.kind() != token.BITAS {
		return operand
	}
	as := b.kind()
	start := b.peekPos()
	b.advance()
	target, ok := b.parseTypeAnnotation()
	if !ok {
		return b.arena.AddError(b.rangeAt(start))
	}
	return b.buildCast(b.rangeAt(start), as, operand, target)
}

// parsePrimary implements the `primary` production: literal,
// identifier-read, parenthesized expression, or an error placeholder.
func (b *Builder) parsePrimary() expr.Prod {
	switch b.kind() {
	case token.INT, token.FLOAT:
		return b.numericLiteralExpr()
	case token.TRUE:
		h := b.advance()
		return b.arena.AddLiteral(b.buf.RangeFrom(h, h), b.types.Bool, 1)
	case token.FALSE:
		h := b.advance()
		return b.arena.AddLiteral(b.buf.RangeFrom(h, h), b.types.Bool, 0)
	case token.IDENT:
		return b.parseIdentifierRead()
	case token.LPAREN:
		b.advance()
		inner := b.parseExpression()
		b.expect(token.RPAREN)
		return inner
	default:
		rng := b.rangeHere()
		b.errorf(rng, "expected an expression, got %s instead", b.kind())
		b.panicConsume()
		return b.arena.AddError(rng)
	}
}

// numericLiteralExpr builds an INT or FLOAT literal, selecting its
// concrete builtin type from the suffix the lexer recorded alongside it
// (§4.1): u8/u16/u32/u64/i8/i16/i32/i64 for integers, f/d for floats, with
// an absent suffix defaulting to i64 (decimal) or u64 (prefixed) for
// integers, and to f64 for floats.
func (b *Builder) numericLiteralExpr() expr.Prod {
	h := b.advance()
	value := b.buf.Literal(h)
	ty := b.typeForSuffix(b.buf.LiteralSuffix(h))
	return b.arena.AddLiteral(b.buf.RangeFrom(h, h), ty, value)
}

// typeForSuffix maps the builtin-type token the lexer recorded as a
// numeric literal's suffix to the corresponding entry in the type table.
func (b *Builder) typeForSuffix(suffix token.Type) types.Token {
	switch suffix {
	case token.U8:
		return b.types.U8
	case token.U16:
		return b.types.U16
	case token.U32:
		return b.types.U32
	case token.U64:
		return b.types.U64
	case token.I8:
		return b.types.I8
	case token.I16:
		return b.types.I16
	case token.I32:
		return b.types.I32
	case token.I64:
		return b.types.I64
	case token.F32:
		return b.types.F32
	case token.F64:
		return b.types.F64
	default:
		return b.types.I64
	}
}

// parseIdentifierRead resolves name to a local or a global, reporting an
// unresolved-identifier diagnostic if neither table has it.
func (b *Builder) parseIdentifierRead() expr.Prod {
	h := b.advance()
	name := b.buf.Identifier(h)
	rng := b.buf.RangeFrom(h, h)

	if l, ok := b.findLocal(name); ok {
		if l.state&stateInit == 0 {
			b.errorf(rng, "%q may be used before it is initialized", name)
		} else if l.state&stateMoved != 0 {
			b.errorf(rng, "%q may have already been moved out of", name)
		}
		return b.arena.AddVarRead(rng, l.decl, l.ty)
	}
	if g, ok := b.mods.Lookup(b.mod, name); ok {
		resolved, err := b.mods.ResolveAliasChain(b.mod, g)
		if err == nil && resolved.Kind == module.GlobalVariable {
			return b.arena.AddGlobalRead(rng, resolved.Var, resolved.Type)
		}
	}
	if suggestion, ok := b.suggestFor(name); ok {
		b.errorf(rng, "undeclared identifier %q (did you mean %q?)", name, suggestion)
	} else {
		b.errorf(rng, "undeclared identifier %q", name)
	}
	return b.arena.AddError(rng)
}

// findLocal searches the local variable table from innermost to
// outermost (§3.6), so an inner declaration shadows an outer one.
func (b *Builder) findLocal(name string) (local, bool) {
	for i := len(b.locals) - 1; i >= 0; i-- {
		if b.locals[i].name == name {
			return b.locals[i], true
		}
	}
	return local{}, false
}

// isErrorType reports whether ty is the error-type sentinel.
func (b *Builder) isErrorType(ty types.Token) bool { return b.types.Kind(ty) == types.KindError }

// buildBinary resolves and, where possible, constant-folds an arithmetic
// or bitwise binary expression (§4.4.2, §4.4.4). An Error operand
// short-circuits to Error without a secondary diagnostic (§7 "combining
// an Error with anything yields Error without secondary diagnostics").
func (b *Builder) buildBinary(rng source.TokenRange, op token.Type, lhs, rhs expr.Prod) expr.Prod {
	lt, rt := b.arena.Prod(lhs).Type, b.arena.Prod(rhs).Type
	if b.isErrorType(lt) || b.isErrorType(rt) {
		return b.arena.AddError(rng)
	}
	switch b.types.SupportsBinary(lt, op, rt) {
	case types.InvalidOp:
		b.errorf(rng, "%s does not support operator %s", b.typeName(lt), op)
		return b.arena.AddError(rng)
	case types.InvalidType:
		b.errorf(rng, "%s does not support %s as right-hand side of %s", b.typeName(lt), b.typeName(rt), op)
		return b.arena.AddError(rng)
	}

	if (op == token.SLASH || op == token.PERCENT) && b.isZeroLiteral(rhs) {
		b.errorf(rng, "Integral division by zero is not allowed!")
		return b.arena.AddError(rng)
	}

	if b.isLiteral(lhs) && b.isLiteral(rhs) {
		if folded, ok := b.tryFold(rng, op, lt, lhs, rhs); ok {
			return folded
		}
	}
	return b.arena.AddBinary(rng, op, lt, lt, rt, lhs, rhs)
}

// buildComparison is buildBinary specialized for comparison operators,
// whose result type is always bool regardless of operand type.
func (b *Builder) buildComparison(rng source.TokenRange, op token.Type, lhs, rhs expr.Prod) expr.Prod {
	lt, rt := b.arena.Prod(lhs).Type, b.arena.Prod(rhs).Type
	if b.isErrorType(lt) || b.isErrorType(rt) {
		return b.arena.AddError(rng)
	}
	switch b.types.SupportsBinary(lt, op, rt) {
	case types.InvalidOp:
		b.errorf(rng, "%s does not support operator %s", b.typeName(lt), op)
		return b.arena.AddError(rng)
	case types.InvalidType:
		b.errorf(rng, "%s does not support %s as right-hand side of %s", b.typeName(lt), b.typeName(rt), op)
		return b.arena.AddError(rng)
	}
	if b.isLiteral(lhs) && b.isLiteral(rhs) {
		if folded, ok := b.tryFold(rng, op, lt, lhs, rhs); ok {
			return folded
		}
	}
	return b.arena.AddBinary(rng, op, b.types.Bool, lt, rt, lhs, rhs)
}

// buildLogical is buildBinary specialized for &&/||, always bool-typed.
func (b *Builder) buildLogical(rng source.TokenRange, op token.Type, lhs, rhs expr.Prod) expr.Prod {
	lt, rt := b.arena.Prod(lhs).Type, b.arena.Prod(rhs).Type
	if b.isErrorType(lt) || b.isErrorType(rt) {
		return b.arena.AddError(rng)
	}
	switch b.types.SupportsBinary(lt, op, rt) {
	case types.InvalidOp:
		b.errorf(rng, "%s does not support operator %s", b.typeName(lt), op)
		return b.arena.AddError(rng)
	case types.InvalidType:
		b.errorf(rng, "%s does not support %s as right-hand side of %s", b.typeName(lt), b.typeName(rt), op)
		return b.arena.AddError(rng)
	}
	if b.isLiteral(lhs) && b.isLiteral(rhs) {
		if folded, ok := b.tryFold(rng, op, lt, lhs, rhs); ok {
			return folded
		}
	}
	return b.arena.AddBinary(rng, op, b.types.Bool, lt, rt, lhs, rhs)
}

// tryFold performs the constant fold itself (§4.4.4), emitting any
// WarnFor-gated warning and returning the folded literal.
func (b *Builder) tryFold(rng source.TokenRange, op token.Type, operandType types.Token, lhs, rhs expr.Prod) (expr.Prod, bool) {
	k := b.types.Kind(operandType)
	a, bb := b.arena.Prod(lhs).Literal, b.arena.Prod(rhs).Literal
	val, warn, divByZero := foldBinary(op, k, a, bb)
	if divByZero {
		b.errorf(rng, "Integral division by zero is not allowed!")
		return b.arena.AddError(rng), true
	}
	b.reportFoldWarn(rng, warn)

	resultType := operandType
	if op.IsComparison() || op == token.ANDAND || op == token.OROR {
		resultType = b.types.Bool
	}
	return b.arena.AddLiteral(rng, resultType, val), true
}

func (b *Builder) reportFoldWarn(rng source.TokenRange, warn foldWarn) {
	switch warn {
	case foldNaNInput, foldNaNOutput:
		if b.warn.ConstantFoldingNaN {
			b.warnf(rng, "constant fold produced a NaN")
		}
	case foldSignedOU:
		if b.warn.ConstantFoldingSignedOU {
			b.warnf(rng, "constant fold overflowed/underflowed a signed type")
		}
	case foldUnsignedOU:
		if b.warn.ConstantFoldingUnsignedOU {
			b.warnf(rng, "constant fold overflowed/underflowed an unsigned type")
		}
	case foldInvalidShift:
		if b.warn.ConstantFoldingInvalidShift {
			b.warnf(rng, "shift amount is greater than or equal to the operand's bit width")
		}
	}
}

func (b *Builder) isLiteral(h expr.Prod) bool {
	return b.arena.Prod(h).Kind == expr.ProdLiteralKind
}

func (b *Builder) isZeroLiteral(h expr.Prod) bool {
	n := b.arena.Prod(h)
	return n.Kind == expr.ProdLiteralKind && n.Literal == 0 && !b.types.Kind(n.Type).IsFloat()
}

// buildUnary resolves and, where possible, constant-folds a unary
// expression (§4.4.2, §4.4.4). Unary `+` has no representation and is
// always rejected.
func (b *Builder) buildUnary(rng source.TokenRange, op token.Type, operand expr.Prod) expr.Prod {
	if op == token.PLUS {
		b.errorf(rng, "unary + is not a valid operator")
		return b.arena.AddError(rng)
	}

	ty := b.arena.Prod(operand).Type
	if b.isErrorType(ty) {
		return b.arena.AddError(rng)
	}
	if op == token.AMP {
		return b.buildAddressOf(rng, operand)
	}
	if op == token.STAR {
		return b.buildPointerLoad(rng, operand, ty)
	}

	if b.types.SupportsUnary(ty, op) != types.Builtin {
		b.errorf(rng, "%s does not support operator %s", b.typeName(ty), op)
		return b.arena.AddError(rng)
	}
	if b.isLiteral(operand) {
		val, warn := foldUnary(op, b.types.Kind(ty), b.arena.Prod(operand).Literal)
		b.reportFoldWarn(rng, warn)
		return b.arena.AddLiteral(rng, ty, val)
	}
	return b.arena.AddUnary(rng, op, ty, operand)
}

// buildAddressOf implements `&x`: only a variable read is addressable.
func (b *Builder) buildAddressOf(rng source.TokenRange, operand expr.Prod) expr.Prod {
	n := b.arena.Prod(operand)
	if n.Kind != expr.ProdVarReadKind && n.Kind != expr.ProdGlobalReadKind {
		b.errorf(rng, "address-of requires a variable, not an arbitrary expression")
		return b.arena.AddError(rng)
	}
	mutable := b.arena.Stmt(n.Decl).Mutable
	return b.arena.AddAddressOf(rng, operand, n.Type, mutable)
}

// buildPointerLoad implements `*p`, rejecting opaque pointer types
// (§4.4.1 "only on non-opaque pointer types").
func (b *Builder) buildPointerLoad(rng source.TokenRange, operand expr.Prod, ptrType types.Token) expr.Prod {
	if b.types.SupportsUnary(ptrType, token.STAR) != types.Builtin {
		b.errorf(rng, "Unary '*' can only be applied on a non-opaque pointer!")
		return b.arena.AddError(rng)
	}
	pointee := b.types.Variant(ptrType).Pointee
	return b.arena.AddPointerLoad(rng, ptrType, pointee, operand)
}

// buildCast implements `as`/`bit_as` (§4.4.2): `as` goes through
// castable_to; `bit_as` additionally requires a byte-family endpoint.
func (b *Builder) buildCast(rng source.TokenRange, as token.Type, operand expr.Prod, target types.Token) expr.Prod {
	srcType := b.arena.Prod(operand).Type
	if b.isErrorType(srcType) || b.isErrorType(target) {
		return b.arena.AddError(rng)
	}
	if as == token.BITAS {
		if !b.types.BitAsAllowed(srcType, target) {
			b.errorf(rng, "bit_as requires the source or destination type to be a byte-family type")
			return b.arena.AddError(rng)
		}
		return b.buildCastResult(rng, as, operand, srcType, target)
	}
	if b.types.CastableTo(srcType, target) != types.Builtin {
		b.errorf(rng, "%s is not castable to %s", b.typeName(srcType), b.typeName(target))
		return b.arena.AddError(rng)
	}
	return b.buildCastResult(rng, as, operand, srcType, target)
}

// buildCastResult folds a cast over a literal operand (§4.4.4 "cast fold
// work analogously" to binary fold), or emits a regular Cast node
// otherwise.
func (b *Builder) buildCastResult(rng source.TokenRange, as token.Type, operand expr.Prod, srcType, target types.Token) expr.Prod {
	if b.isLiteral(operand) {
		val, warn := foldCast(as, b.types.Kind(srcType), b.types.Kind(target), b.arena.Prod(operand).Literal)
		b.reportFoldWarn(rng, warn)
		return b.arena.AddLiteral(rng, target, val)
	}
	return b.arena.AddCast(rng, as, target, srcType, operand)
}

// buildAssign implements the sound assignment semantics §9's Open
// Questions section prescribes over the source's stub: consume the
// right-hand side and produce a write expression, rather than returning
// the left-hand side unchanged.
func (b *Builder) buildAssign(left expr.Prod, op token.Type, right expr.Prod) expr.Prod {
	n := b.arena.Prod(left)
	rng := b.buf.RangeFrom(n.Range.Start, b.arena.Prod(right).Range.End)

	if n.Kind == expr.ProdErrorKind || b.isErrorType(b.arena.Prod(right).Type) {
		return b.arena.AddError(rng)
	}

	value := right
	if op.IsCompoundAssignment() {
		value = b.buildBinary(rng, op.CompoundBase(), left, right)
	}

	switch n.Kind {
	case expr.ProdVarReadKind:
		if !b.arena.Stmt(n.Decl).Mutable {
			b.errorf(rng, "cannot assign to an immutable local")
			return b.arena.AddError(rng)
		}
		b.setLocalState(n.Decl, stateInit)
		return b.arena.AddVarWrite(rng, n.Decl, value)
	case expr.ProdGlobalReadKind:
		return b.arena.AddGlobalWrite(rng, n.Decl, value)
	case expr.ProdPointerLoadKind:
		ptrType := b.arena.Prod(n.A).Type
		return b.arena.AddPointerStore(rng, ptrType, n.Type, b.arena.Prod(value).Type, n.A, value)
	default:
		b.errorf(rng, "left-hand side of assignment is not assignable")
		return b.arena.AddError(rng)
	}
}

// typeName renders a builtin-ish name for diagnostics.
func (b *Builder) typeName(h types.Token) string {
	switch b.types.Kind(h) {
	case types.KindBool:
		return "bool"
	case types.KindChar:
		return "char"
	case types.KindI8:
		return "i8"
	case types.KindI16:
		return "i16"
	case types.KindI32:
		return "i32"
	case types.KindI64:
		return "i64"
	case types.KindU8:
		return "u8"
	case types.KindU16:
		return "u16"
	case types.KindU32:
		return "u32"
	case types.KindU64:
		return "u64"
	case types.KindF32:
		return "f32"
	case types.KindF64:
		return "f64"
	case types.KindByte:
		return "byte"
	case types.KindWord:
		return "word"
	case types.KindDword:
		return "dword"
	case types.KindQword:
		return "qword"
	case types.KindVoid:
		return "void"
	case types.KindPointer, types.KindMutPointer:
		return "pointer"
	case types.KindOpaquePointer, types.KindMutOpaquePointer:
		return "opaque pointer"
	default:
		return "<error type>"
	}
}
