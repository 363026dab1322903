// Package builder implements the AST builder (§4.4): a recursive-descent
// and Pratt-precedence parser that walks a token buffer and simultaneously
// performs name resolution, type checking, and constant folding, emitting
// into an expr.Arena and a module.Table and reporting through a shared
// diag.Reporter.
package builder

import (
	"github.com/colt-lang/coltc/internal/config"
	"github.com/colt-lang/coltc/internal/container"
	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/module"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// maxRecursionDepth bounds how deeply parse functions may nest before the
// builder gives up on the current statement (§4.4.9).
const maxRecursionDepth = 256

// local is one entry in the builder's local variable table (§3.6): the
// ordered, scope-truncated sequence of variables visible while parsing a
// function body.
type local struct {
	name    string
	ty      types.Token
	mutable bool
	decl    expr.Stmt
	state   varState
}

// recursionExceeded is the internal escape thrown when the recursion
// guard trips; it never crosses Parse's public API (§9 "the escape never
// crosses the public API").
type recursionExceeded struct{ pos token.Position }

// Builder parses one unit's token buffer into its expression arena.
type Builder struct {
	buf   *source.Buffer
	rep   diag.Reporter
	types *types.Table
	mods  *module.Table
	mod   module.Handle
	arena *expr.Arena
	warn  config.WarnFor

	cur int // current token index into buf

	depth   *container.StaticVector[struct{}]
	locals  []local
	consume []panicConsumer

	scopeDepth     int        // 0 at module scope, >0 inside a nested scope/function body
	lastVisibility token.Type // most recent `public`/`private` marker, for redundant_visibility

	path string // the unit's source path, for WarnFor.ForPath (§A.3 supplement)
}

// New creates a Builder over buf, emitting into arena and registering
// globals in mods under mod, reporting diagnostics to rep.
func New(buf *source.Buffer, rep diag.Reporter, tbl *types.Table, mods *module.Table, mod module.Handle, arena *expr.Arena, warn config.WarnFor, path string) *Builder {
	return &Builder{
		buf:   buf,
		rep:   rep,
		types: tbl,
		mods:  mods,
		mod:   mod,
		arena: arena,
		warn:  warn.ForPath(path),
		depth: container.NewStaticVector[struct{}](maxRecursionDepth),
		path:  path,
	}
}

// Parse consumes the whole buffer, parsing top-level statements until
// EOF. A panic-mode consumer that eats to the next semicolon is installed
// around each top-level statement, so one malformed statement never
// prevents later ones from being parsed.
func (b *Builder) Parse() []expr.Stmt {
	var stmts []expr.Stmt
	for b.kind() != token.EOF {
		stmts = append(stmts, b.parseTopLevelStatement())
	}
	return stmts
}

// parseTopLevelStatement parses one statement under its own recursion
// guard and panic-mode recovery scope, so an internal escape from one
// statement never aborts the whole unit.
func (b *Builder) parseTopLevelStatement() (result expr.Stmt) {
	startPos := b.peekPos()
	defer func() {
		if r := recover(); r != nil {
			esc, ok := r.(recursionExceeded)
			if !ok {
				panic(r)
			}
			b.rep.Error("exceeded recursion depth", b.infoAt(esc.pos), 0)
			b.consumeToSemicolon()
			result = b.arena.AddStmtError(b.rangeAt(startPos))
		}
	}()
	return b.withPanicConsumer(b.consumeToSemicolon, func() expr.Stmt {
		return b.parseStatement()
	})
}

// enter acquires a recursion-depth slot, throwing recursionExceeded if the
// guard is already at maxRecursionDepth (§4.4.9). Callers must defer exit.
func (b *Builder) enter() {
	if !b.depth.Push(struct{}{}) {
		panic(recursionExceeded{pos: b.peekPos()})
	}
}

func (b *Builder) exit() { b.depth.Pop() }
