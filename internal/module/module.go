// Package module implements the module table (§3.5): a tree of modules,
// each owning a symbol table of globals (functions, variables, types,
// and aliases to other globals), queried by qualified name.
package module

import (
	"fmt"
	"strings"

	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/types"
)

// maxNestingDepth bounds how deep child modules may nest (§3.5 "fixed
// compile-time constant").
const maxNestingDepth = 64

// Handle is a reference to a module in a Table.
type Handle int32

// InvalidHandle marks the absence of a parent (the root module's Parent).
var InvalidHandle = Handle(-1)

// GlobalKind discriminates what a Global names.
type GlobalKind uint8

const (
	GlobalFunction GlobalKind = iota
	GlobalVariable
	GlobalType
	GlobalAlias
)

// Global is one entry in a module's symbol table.
type Global struct {
	Kind GlobalKind

	// Func/Var populate exactly one of these depending on Kind.
	Func expr.Stmt
	Var  expr.Stmt
	Type types.Token

	// Alias names another global in the same or an enclosing module;
	// resolved through ResolveAlias.
	Alias string
}

// Module is one node in the module tree.
type Module struct {
	Name     string
	Parent   Handle
	Children []Handle
	Depth    int
	Symbols  map[string]Global
}

// Table owns every module in a compilation run. It is the "shared
// resource" the spec calls out as needing external serialization across
// concurrent units (§5); this package performs no locking itself.
type Table struct {
	modules []Module
	byPath  map[string]Handle
}

// NewTable creates a table with a single anonymous root module.
func NewTable() *Table {
	t := &Table{byPath: make(map[string]Handle)}
	root := Module{Name: "", Parent: InvalidHandle, Symbols: make(map[string]Global)}
	t.modules = append(t.modules, root)
	t.byPath[""] = Handle(0)
	return t
}

// Root returns the handle of the implicit root module.
func (t *Table) Root() Handle { return Handle(0) }

// Get returns the module at h.
func (t *Table) Get(h Handle) *Module { return &t.modules[h] }

// CreateChild creates a new child module named name under parent.
// Returns an error if parent already has a child with that name or if
// the new module would exceed maxNestingDepth.
func (t *Table) CreateChild(parent Handle, name string) (Handle, error) {
	p := &t.modules[parent]
	if p.Depth+1 > maxNestingDepth {
		return InvalidHandle, fmt.Errorf("module: nesting depth exceeds %d", maxNestingDepth)
	}
	for _, c := range p.Children {
		if t.modules[c].Name == name {
			return InvalidHandle, fmt.Errorf("module: %q already has a child named %q", p.Name, name)
		}
	}
	h := Handle(len(t.modules))
	t.modules = append(t.modules, Module{
		Name:    name,
		Parent:  parent,
		Depth:   p.Depth + 1,
		Symbols: make(map[string]Global),
	})
	p.Children = append(p.Children, h)
	t.byPath[t.qualifiedPath(h)] = h
	return h, nil
}

func (t *Table) qualifiedPath(h Handle) string {
	var parts []string
	for cur := h; cur != InvalidHandle && t.modules[cur].Name != ""; cur = t.modules[cur].Parent {
		parts = append([]string{t.modules[cur].Name}, parts...)
	}
	return strings.Join(parts, ".")
}

// LookupByQualifiedName finds the module whose dotted path matches path
// (e.g. "a.b.c"). Returns InvalidHandle, false if no such module exists.
func (t *Table) LookupByQualifiedName(path string) (Handle, bool) {
	h, ok := t.byPath[path]
	return h, ok
}

// Declare adds name to m's symbol table. Returns an error if name is
// already declared in that module (shadowing an enclosing module's name
// is allowed and is the WarnFor var_shadowing condition, not an error
// here).
func (t *Table) Declare(m Handle, name string, g Global) error {
	mod := &t.modules[m]
	if _, exists := mod.Symbols[name]; exists {
		return fmt.Errorf("module: %q already declares %q", mod.Name, name)
	}
	mod.Symbols[name] = g
	return nil
}

// Lookup resolves name starting at m and walking up through parents,
// the same scoping rule local variable lookup uses one level down.
func (t *Table) Lookup(m Handle, name string) (Global, bool) {
	for cur := m; cur != InvalidHandle; cur = t.modules[cur].Parent {
		if g, ok := t.modules[cur].Symbols[name]; ok {
			return g, true
		}
	}
	return Global{}, false
}

// ResolveAliasChain follows GlobalAlias entries starting from g until it
// reaches a non-alias global, searching for each alias name starting at
// m. Returns an error if an alias name repeats along the chain (a cycle)
// or if an alias target is not declared.
func (t *Table) ResolveAliasChain(m Handle, g Global) (Global, error) {
	visited := make(map[string]bool)
	for g.Kind == GlobalAlias {
		if visited[g.Alias] {
			return Global{}, fmt.Errorf("module: alias cycle resolving %q", g.Alias)
		}
		visited[g.Alias] = true
		next, ok := t.Lookup(m, g.Alias)
		if !ok {
			return Global{}, fmt.Errorf("module: alias target %q is not declared", g.Alias)
		}
		g = next
	}
	return g, nil
}
