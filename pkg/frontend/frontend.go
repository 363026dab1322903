// Package frontend is the single entry point tying the lexer, token
// buffer, AST builder and diagnostic reporter stack into one pipeline
// (§2 SYSTEM OVERVIEW), mirroring the shape of the teacher's engine
// facade (`New`/`Parse` in pkg/dwscript) over this project's own data
// model.
package frontend

import (
	"github.com/colt-lang/coltc/internal/builder"
	"github.com/colt-lang/coltc/internal/config"
	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/lexer"
	"github.com/colt-lang/coltc/internal/module"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/internal/types"
)

// Unit is one compiled translation unit: its token buffer, the
// statements the builder parsed out of it, and the arena/type/module
// tables those statements reference.
type Unit struct {
	Path  string
	Buf   *source.Buffer
	Arena *expr.Arena
	Types *types.Table
	Mods  *module.Table
	Mod   module.Handle

	Stmts []expr.Stmt
}

// Options configures a Compile call.
type Options struct {
	Path   string      // the unit's source path, used for WarnFor.ForPath
	WarnFor config.WarnFor
	Types  *types.Table  // shared across units in a multi-unit run; created if nil
	Mods   *module.Table // shared across units in a multi-unit run; created if nil
}

// Compile lexes and parses src into a Unit, reporting every diagnostic
// to rep. Types and Mods are shared tables a caller may pass in when
// compiling more than one unit into the same compilation run; passing
// nil creates fresh ones for a standalone unit.
func Compile(src string, rep diag.Reporter, opts Options) *Unit {
	tbl := opts.Types
	if tbl == nil {
		tbl = types.NewTable()
	}
	mods := opts.Mods
	if mods == nil {
		mods = module.NewTable()
	}

	buf := lexer.Lex(src, rep)
	arena := expr.NewArena(tbl)

	b := builder.New(buf, rep, tbl, mods, mods.Root(), arena, opts.WarnFor, opts.Path)
	stmts := b.Parse()

	return &Unit{
		Path:  opts.Path,
		Buf:   buf,
		Arena: arena,
		Types: tbl,
		Mods:  mods,
		Mod:   mods.Root(),
		Stmts: stmts,
	}
}
