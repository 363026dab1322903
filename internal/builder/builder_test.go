package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colt-lang/coltc/internal/config"
	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/lexer"
	"github.com/colt-lang/coltc/internal/module"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// recorder is a diag.Reporter that keeps every diagnostic's text by
// severity, for tests that assert on diagnostic content without
// rendering through the Console.
type recorder struct {
	messages, warnings, errors []string
	counts                     diag.Counts
}

func (r *recorder) Message(text string, _ *source.SourceInfo, _ int) {
	r.messages = append(r.messages, text)
	r.counts.Messages++
}
func (r *recorder) Warn(text string, _ *source.SourceInfo, _ int) {
	r.warnings = append(r.warnings, text)
	r.counts.Warnings++
}
func (r *recorder) Error(text string, _ *source.SourceInfo, _ int) {
	r.errors = append(r.errors, text)
	r.counts.Errors++
}
func (r *recorder) Counts() diag.Counts { return r.counts }

// harness bundles a freshly built Builder with the arena it emits into
// and the recorder it reports through, so tests can both parse and
// inspect diagnostics.
type harness struct {
	b   *Builder
	a   *expr.Arena
	rep *recorder
}

func newHarness(src string) *harness {
	rep := &recorder{}
	buf := lexer.Lex(src, rep)
	tbl := types.NewTable()
	mods := module.NewTable()
	arena := expr.NewArena(tbl)
	b := New(buf, rep, tbl, mods, mods.Root(), arena, config.DefaultWarnFor(), "test.colt")
	return &harness{b: b, a: arena, rep: rep}
}

func (h *harness) parse() []expr.Stmt { return h.b.Parse() }

func TestParseGlobalVarDeclInfersTypeFromInitializer(t *testing.T) {
	h := newHarness("let x = 1 + 2;")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)
	require.Len(t, stmts, 1)

	decl := h.a.Stmt(stmts[0])
	require.Equal(t, expr.StmtGlobalDeclKind, decl.Kind)
	require.Equal(t, "x", decl.Name)
	require.False(t, decl.Mutable)

	init := h.a.Prod(decl.Init)
	require.Equal(t, expr.ProdLiteralKind, init.Kind)
	require.EqualValues(t, 3, init.Literal)
}

func TestParseGlobalVarRequiresInitializer(t *testing.T) {
	h := newHarness("let x: i32;")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseVarMutRedundantWarns(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { var mut y = 1; }")
	h.parse()
	require.NotEmpty(t, h.rep.warnings)
}

func TestParseLocalUninitializedRequiresType(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { let x = undefined; }")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseLocalUseBeforeInitIsDiagnosed(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { let x: i32 = undefined; let y = x; }")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseAssignmentToImmutableLocalErrors(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { let x = 1; x = 2; }")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseAssignmentToMutableLocalProducesWrite(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { var x = 1; x = 2; }")
	h.parse()
	require.Empty(t, h.rep.errors)
}

func TestParseComparisonChainDesugarsToConjunction(t *testing.T) {
	h := newHarness("let r = 1 < 2 < 3;")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	decl := h.a.Stmt(stmts[0])
	top := h.a.Prod(decl.Init)
	// Folded at parse time since every operand is a literal: the whole
	// chain collapses to a single boolean literal.
	require.Equal(t, expr.ProdLiteralKind, top.Kind)
	require.EqualValues(t, 1, top.Literal)
}

func TestParseComparisonChainMismatchedSetsErrors(t *testing.T) {
	h := newHarness("let r = 1 < 2 == 3;")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseConditionRewritesBooleanReadToComparison(t *testing.T) {
	h := newHarness("let done = true; if done { let x = 1; }")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	cond := h.a.Stmt(stmts[1])
	require.Equal(t, expr.StmtConditionKind, cond.Kind)
	guard := h.a.Prod(cond.Cond)
	require.Equal(t, expr.ProdBinaryKind, guard.Kind)
	require.Equal(t, token.EQ, guard.Op)
}

func TestParseConditionRequiresBooleanGuard(t *testing.T) {
	h := newHarness("if 1 { }")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseScopeTruncatesLocalsOnExit(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { let x = 1; }")
	h.parse()
	require.Empty(t, h.b.locals)
}

func TestParseElifDesugarsToNestedCondition(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { let a = 1; } elif f == 1 { let b = 2; } else { let c = 3; }")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	top := h.a.Stmt(stmts[1])
	require.Equal(t, expr.StmtConditionKind, top.Kind)
	require.True(t, top.Else.Valid())

	nested := h.a.Stmt(top.Else)
	require.Equal(t, expr.StmtConditionKind, nested.Kind)
}

func TestParseConstantFoldingOverflowWarns(t *testing.T) {
	// Unsuffixed integer literals default to i64 (§4.1), so the overflow
	// needs an explicit i32 suffix on both operands to land within that
	// narrower width.
	h := newHarness("let x = 2147483647i32 + 1i32;")
	h.parse()
	require.NotEmpty(t, h.rep.warnings)
}

func TestParseDivisionByZeroLiteralErrors(t *testing.T) {
	h := newHarness("let x = 1 / 0;")
	h.parse()
	require.NotEmpty(t, h.rep.errors)
}

func TestParseVarShadowingWarns(t *testing.T) {
	h := newHarness("let g = 0; if g == 0 { let g = 1; }")
	h.parse()
	require.NotEmpty(t, h.rep.warnings)
}

func TestParseErrorExpressionShortCircuitsWithoutSecondaryDiagnostics(t *testing.T) {
	h := newHarness("let x = undeclared + 1;")
	h.parse()
	require.Len(t, h.rep.errors, 1)
	require.Contains(t, h.rep.errors[0], "undeclared")
}

func TestParseRecursionGuardRecoversFromDeepNesting(t *testing.T) {
	src := "let x = "
	for i := 0; i < 400; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 400; i++ {
		src += ")"
	}
	src += ";"

	h := newHarness(src)
	require.NotPanics(t, func() { h.parse() })
	require.NotEmpty(t, h.rep.errors)
}

func TestParseIntLiteralSuffixSelectsType(t *testing.T) {
	cases := []struct {
		src string
		ty  func(h *harness) types.Token
	}{
		{"let a = 5u8;", func(h *harness) types.Token { return h.b.types.U8 }},
		{"let a = 5i64;", func(h *harness) types.Token { return h.b.types.I64 }},
		{"let a = 5;", func(h *harness) types.Token { return h.b.types.I64 }},
		{"let a = 0x1F;", func(h *harness) types.Token { return h.b.types.U64 }},
	}
	for _, c := range cases {
		h := newHarness(c.src)
		stmts := h.parse()
		require.Empty(t, h.rep.errors, c.src)
		decl := h.a.Stmt(stmts[0])
		init := h.a.Prod(decl.Init)
		require.Equal(t, c.ty(h), init.Type, c.src)
	}
}

func TestParseFloatLiteralSuffixSelectsType(t *testing.T) {
	h := newHarness("let a = 1.5f;")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)
	decl := h.a.Stmt(stmts[0])
	init := h.a.Prod(decl.Init)
	require.Equal(t, h.b.types.F32, init.Type)

	h = newHarness("let b = 1.5;")
	stmts = h.parse()
	require.Empty(t, h.rep.errors)
	decl = h.a.Stmt(stmts[0])
	init = h.a.Prod(decl.Init)
	require.Equal(t, h.b.types.F64, init.Type)
}

func TestParseCastFoldsLiteralOperand(t *testing.T) {
	h := newHarness("let x = 5 as i64;")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	decl := h.a.Stmt(stmts[0])
	init := h.a.Prod(decl.Init)
	require.Equal(t, expr.ProdLiteralKind, init.Kind)
	require.EqualValues(t, 5, init.Literal)
	require.Equal(t, h.b.types.I64, init.Type)
}

func TestParseCastOfNonLiteralIsNotFolded(t *testing.T) {
	h := newHarness("let f = 0; if f == 0 { let n = f as i64; }")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	cond := h.a.Stmt(stmts[1])
	scope := h.a.Stmt(cond.Then)
	decl := h.a.Stmt(scope.Children[0])
	require.Equal(t, expr.ProdCastKind, h.a.Prod(decl.Init).Kind)
}

func TestParseConditionalWithTrueGuardCollapsesToThenBranch(t *testing.T) {
	h := newHarness("let f = 0; if true { let a = 1; } else { let b = 2; }")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	collapsed := h.a.Stmt(stmts[1])
	require.NotEqual(t, expr.StmtConditionKind, collapsed.Kind)
	require.Equal(t, expr.StmtScopeKind, collapsed.Kind)
	require.Len(t, collapsed.Children, 1)
}

func TestParseConditionalWithFalseGuardCollapsesToElseBranch(t *testing.T) {
	h := newHarness("let f = 0; if false { let a = 1; } else { let b = 2; }")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	collapsed := h.a.Stmt(stmts[1])
	require.NotEqual(t, expr.StmtConditionKind, collapsed.Kind)
	decl := h.a.Stmt(collapsed.Children[0])
	require.Equal(t, "b", decl.Name)
}

func TestParseConditionalWithFalseGuardAndNoElseCollapsesToEmptyScope(t *testing.T) {
	h := newHarness("let f = 0; if false { let a = 1; }")
	stmts := h.parse()
	require.Empty(t, h.rep.errors)

	collapsed := h.a.Stmt(stmts[1])
	require.Equal(t, expr.StmtScopeKind, collapsed.Kind)
	require.Empty(t, collapsed.Children)
}

func TestParseComparisonChainMismatchedSetsReportsChainDiagnostic(t *testing.T) {
	h := newHarness("let r = 1 < 2 == 3;")
	h.parse()
	require.Len(t, h.rep.errors, 1)
	require.Equal(t, "'==' cannot be chained with '<' or '<='", h.rep.errors[0])
}
