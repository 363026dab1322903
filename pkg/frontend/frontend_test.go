package frontend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colt-lang/coltc/internal/config"
	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/source"
)

// countingReporter tallies diagnostics by severity without rendering them,
// for tests that only care how many of each kind were reported.
type countingReporter struct{ counts diag.Counts }

func (c *countingReporter) Message(string, *source.SourceInfo, int) { c.counts.Messages++ }
func (c *countingReporter) Warn(string, *source.SourceInfo, int)    { c.counts.Warnings++ }
func (c *countingReporter) Error(string, *source.SourceInfo, int)   { c.counts.Errors++ }
func (c *countingReporter) Counts() diag.Counts                     { return c.counts }

func TestCompileFoldsConstantGlobal(t *testing.T) {
	rep := diag.NewSink()
	unit := Compile("let x: i32 = 2 + 3 * 4;", rep, Options{Path: "<test>", WarnFor: config.DefaultWarnFor()})

	require.Len(t, unit.Stmts, 1)
	decl := unit.Arena.Stmt(unit.Stmts[0])
	require.Equal(t, "x", decl.Name)

	init := unit.Arena.Prod(decl.Init)
	require.Equal(t, expr.ProdLiteralKind, init.Kind)
	require.EqualValues(t, 14, init.Literal)
}

func TestCompileReportsDivisionByZero(t *testing.T) {
	rep := &countingReporter{}
	Compile("let y = 5 / 0;", rep, Options{Path: "<test>", WarnFor: config.DefaultWarnFor()})
	require.Equal(t, 1, rep.Counts().Errors)
}

func TestCompileSharesTypeAndModuleTablesAcrossUnits(t *testing.T) {
	rep := diag.NewSink()
	first := Compile("let shared = 1;", rep, Options{Path: "a.colt", WarnFor: config.DefaultWarnFor()})
	second := Compile("let other = shared + 1;", rep, Options{
		Path:    "b.colt",
		WarnFor: config.DefaultWarnFor(),
		Types:   first.Types,
		Mods:    first.Mods,
	})

	require.Len(t, second.Stmts, 1)
	decl := second.Arena.Stmt(second.Stmts[0])
	init := second.Arena.Prod(decl.Init)
	require.Equal(t, expr.ProdGlobalReadKind, second.Arena.Prod(findVarReadOperand(second, init)).Kind)
}

// findVarReadOperand drills into a binary expression's left operand,
// the global read the second unit's `shared + 1` resolves against.
func findVarReadOperand(u *Unit, p expr.Prod) expr.Prod {
	return u.Arena.Prod(p).A
}
