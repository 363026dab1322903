package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

func rng() source.TokenRange {
	h := source.TokenHandle{Index: 0}
	return source.TokenRange{Start: h, End: h}
}

func TestAddLiteralAndBinary(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)

	one := a.AddLiteral(rng(), tbl.I32, 1)
	two := a.AddLiteral(rng(), tbl.I32, 2)
	sum := a.AddBinary(rng(), token.PLUS, tbl.I32, tbl.I32, tbl.I32, one, two)

	node := a.Prod(sum)
	require.Equal(t, ProdBinaryKind, node.Kind)
	require.Equal(t, tbl.I32, node.Type)
	require.Equal(t, one, node.A)
	require.Equal(t, two, node.B)
}

func TestAddBinaryPanicsOnUnsupportedOperand(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	one := a.AddLiteral(rng(), tbl.I32, 1)
	two := a.AddLiteral(rng(), tbl.I64, 2)

	require.Panics(t, func() {
		a.AddBinary(rng(), token.PLUS, tbl.I32, tbl.I32, tbl.I64, one, two)
	})
}

func TestAddAddressOfPropagatesMutability(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	x := a.AddVarDecl(rng(), "x", tbl.I32, true, InvalidProd)
	read := a.AddVarRead(rng(), x, tbl.I32)

	addr := a.AddAddressOf(rng(), read, tbl.I32, true)
	node := a.Prod(addr)
	require.Equal(t, tbl.Pointer(tbl.I32, true), node.Type)
}

func TestAddVarReadRejectsNonLocalDeclaration(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	init := a.AddLiteral(rng(), tbl.I32, 1)
	global := a.AddGlobalDecl(rng(), "g", tbl.I32, false, init)

	require.Panics(t, func() {
		a.AddVarRead(rng(), global, tbl.I32)
	})
}

func TestAddGlobalDeclRequiresInitializer(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	require.Panics(t, func() {
		a.AddGlobalDecl(rng(), "g", tbl.I32, false, InvalidProd)
	})
}

func TestAddPointerStoreRequiresMutablePointerAndMatchingPointee(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	x := a.AddVarDecl(rng(), "x", tbl.I32, true, InvalidProd)
	read := a.AddVarRead(rng(), x, tbl.I32)
	ptr := a.AddAddressOf(rng(), read, tbl.I32, true)
	value := a.AddLiteral(rng(), tbl.I32, 5)

	store := a.AddPointerStore(rng(), tbl.Pointer(tbl.I32, true), tbl.I32, tbl.I32, ptr, value)
	require.Equal(t, ProdPointerStoreKind, a.Prod(store).Kind)

	require.Panics(t, func() {
		a.AddPointerStore(rng(), tbl.Pointer(tbl.I32, false), tbl.I32, tbl.I32, ptr, value)
	})
}

func TestAddVarWriteRejectsImmutableTarget(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	init := a.AddLiteral(rng(), tbl.I32, 1)
	x := a.AddVarDecl(rng(), "x", tbl.I32, false, init)

	require.Panics(t, func() {
		a.AddVarWrite(rng(), x, a.AddLiteral(rng(), tbl.I32, 2))
	})
}

func TestAddScopeRecordsOwnDeclarations(t *testing.T) {
	tbl := types.NewTable()
	a := NewArena(tbl)
	x := a.AddVarDecl(rng(), "x", tbl.I32, false, a.AddLiteral(rng(), tbl.I32, 1))
	scope := a.AddScope(rng(), []Stmt{x}, []Stmt{x})

	node := a.Stmt(scope)
	require.Equal(t, StmtScopeKind, node.Kind)
	require.Equal(t, []Stmt{x}, node.Decls)
}
