package module

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colt-lang/coltc/internal/types"
)

func TestCreateChildAndQualifiedLookup(t *testing.T) {
	tbl := NewTable()
	a, err := tbl.CreateChild(tbl.Root(), "a")
	require.NoError(t, err)
	b, err := tbl.CreateChild(a, "b")
	require.NoError(t, err)

	found, ok := tbl.LookupByQualifiedName("a.b")
	require.True(t, ok)
	require.Equal(t, b, found)
}

func TestCreateChildRejectsDuplicateName(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.CreateChild(tbl.Root(), "a")
	require.NoError(t, err)
	_, err = tbl.CreateChild(tbl.Root(), "a")
	require.Error(t, err)
}

func TestDeclareAndLookupWalksParentChain(t *testing.T) {
	tbl := NewTable()
	typeTbl := types.NewTable()
	a, _ := tbl.CreateChild(tbl.Root(), "a")

	require.NoError(t, tbl.Declare(tbl.Root(), "Width", Global{Kind: GlobalType, Type: typeTbl.I32}))

	g, ok := tbl.Lookup(a, "Width")
	require.True(t, ok)
	require.Equal(t, typeTbl.I32, g.Type)
}

func TestDeclareRejectsDuplicateInSameModule(t *testing.T) {
	tbl := NewTable()
	typeTbl := types.NewTable()
	require.NoError(t, tbl.Declare(tbl.Root(), "x", Global{Kind: GlobalType, Type: typeTbl.I32}))
	err := tbl.Declare(tbl.Root(), "x", Global{Kind: GlobalType, Type: typeTbl.I64})
	require.Error(t, err)
}

func TestResolveAliasChain(t *testing.T) {
	tbl := NewTable()
	typeTbl := types.NewTable()
	require.NoError(t, tbl.Declare(tbl.Root(), "Real", Global{Kind: GlobalType, Type: typeTbl.F64}))
	require.NoError(t, tbl.Declare(tbl.Root(), "Number", Global{Kind: GlobalAlias, Alias: "Real"}))

	g, _ := tbl.Lookup(tbl.Root(), "Number")
	resolved, err := tbl.ResolveAliasChain(tbl.Root(), g)
	require.NoError(t, err)
	require.Equal(t, GlobalType, resolved.Kind)
	require.Equal(t, typeTbl.F64, resolved.Type)
}

func TestResolveAliasChainDetectsCycle(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Declare(tbl.Root(), "A", Global{Kind: GlobalAlias, Alias: "B"}))
	require.NoError(t, tbl.Declare(tbl.Root(), "B", Global{Kind: GlobalAlias, Alias: "A"}))

	g, _ := tbl.Lookup(tbl.Root(), "A")
	_, err := tbl.ResolveAliasChain(tbl.Root(), g)
	require.Error(t, err)
}
