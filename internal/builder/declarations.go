package builder

import (
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/module"
	"github.com/colt-lang/coltc/pkg/token"
)

// varState is the local variable table's per-entry bit set (§3.6):
// UNDEF/INIT/MOVED, merged across branches by bitwise OR so a variable
// assigned on only one arm of a conditional comes out PARTIAL_UINIT
// (UNDEF|INIT) rather than silently INIT.
type varState uint8

const (
	stateUndef varState = 1 << iota
	stateInit
	stateMoved
)

func mergeVarState(a, b varState) varState { return a | b }

// shadowsVisible reports whether name is already visible, either as
// another local currently in scope or as a module global, for the
// var_shadowing warning (§6.2).
func (b *Builder) shadowsVisible(name string) bool {
	if _, ok := b.findLocal(name); ok {
		return true
	}
	_, ok := b.mods.Lookup(b.mod, name)
	return ok
}

// setLocalState overwrites the tracked state for the local declared by
// decl, used when a write statically proves the variable initialized
// (§3.6). No-op if decl does not name a tracked local (e.g. a parameter
// not yet entered into the table).
func (b *Builder) setLocalState(decl expr.Stmt, st varState) {
	for i := range b.locals {
		if b.locals[i].decl == decl {
			b.locals[i].state = st
			return
		}
	}
}

// snapshotLocalStates captures the current state of every local visible
// at the point a conditional is entered, so the two branches' outcomes
// can be merged back via mergeVarState on exit (§3.6).
func (b *Builder) snapshotLocalStates() []varState {
	snap := make([]varState, len(b.locals))
	for i := range b.locals {
		snap[i] = b.locals[i].state
	}
	return snap
}

// restoreLocalStates resets every local (up to len(snap)) to the state
// recorded in snap, used to give each conditional branch an independent
// starting point before merging their outcomes.
func (b *Builder) restoreLocalStates(snap []varState) {
	for i := range snap {
		if i < len(b.locals) {
			b.locals[i].state = snap[i]
		}
	}
}

// mergeLocalStatesFrom merges every local's current state (up to
// len(with)) with the corresponding entry in with via bitwise OR,
// implementing the branch-merge rule from §3.6.
func (b *Builder) mergeLocalStatesFrom(with []varState) {
	for i := range with {
		if i < len(b.locals) {
			b.locals[i].state = mergeVarState(b.locals[i].state, with[i])
		}
	}
}

// parseVarDecl parses a local `let`/`var` declaration (§4.4.5): `var` is
// sugar for "mutable let"; `let` takes an optional explicit `mut`; `var
// mut` is accepted but redundant and warns. An uninitialized local must
// carry an explicit type annotation; the initializer's type is adopted
// when no annotation is given.
func (b *Builder) parseVarDecl() expr.Stmt {
	start := b.peekPos()
	keyword := b.kind()
	b.advance()

	mutable := keyword == token.VAR
	if b.kind() == token.MUT {
		b.advance()
		if mutable {
			b.warnf(b.rangeHere(), "`var mut` is redundant, `var` is already mutable")
		}
		mutable = true
	}

	nameTok, ok := b.expect(token.IDENT)
	if !ok {
		return b.arena.AddStmtError(b.rangeAt(start))
	}
	name := b.buf.Identifier(nameTok)

	hasAnnotation := false
	declaredType := b.types.ErrorType
	if _, ok := b.match(token.COLON); ok {
		t, ok := b.parseTypeAnnotation()
		if ok {
			declaredType = t
			hasAnnotation = true
		}
	}

	var init expr.Prod = expr.InvalidProd
	if _, ok := b.match(token.ASSIGN); ok {
		if b.kind() == token.UNDEFINED {
			b.advance()
		} else {
			init = b.parseExpression()
		}
	}

	if !init.Valid() && !hasAnnotation {
		b.errorf(b.rangeAt(start), "an uninitialized local must have an explicit type")
		declaredType = b.types.ErrorType
	} else if !hasAnnotation {
		declaredType = b.arena.Prod(init).Type
	}
	b.expect(token.SEMICOLON)

	rng := b.rangeAt(start)
	if b.warn.VarShadowing && b.shadowsVisible(name) {
		b.warnf(rng, "declaration of %q shadows an enclosing declaration", name)
	}
	decl := b.arena.AddVarDecl(rng, name, declaredType, mutable, init)

	st := stateUndef
	if init.Valid() {
		st = stateInit
	}
	b.locals = append(b.locals, local{name: name, ty: declaredType, mutable: mutable, decl: decl, state: st})
	return decl
}

// parseGlobalVarDecl is the module-scope counterpart of parseVarDecl: a
// global must have an initializer (§4.4.5).
func (b *Builder) parseGlobalVarDecl() expr.Stmt {
	start := b.peekPos()
	keyword := b.kind()
	b.advance()

	mutable := keyword == token.VAR
	if b.kind() == token.MUT {
		b.advance()
		mutable = true
	}

	nameTok, ok := b.expect(token.IDENT)
	if !ok {
		return b.arena.AddStmtError(b.rangeAt(start))
	}
	name := b.buf.Identifier(nameTok)

	hasAnnotation := false
	declaredType := b.types.ErrorType
	if _, ok := b.match(token.COLON); ok {
		if t, ok := b.parseTypeAnnotation(); ok {
			declaredType = t
			hasAnnotation = true
		}
	}

	if _, ok := b.expect(token.ASSIGN); !ok {
		return b.arena.AddStmtError(b.rangeAt(start))
	}
	init := b.parseExpression()
	if !hasAnnotation {
		declaredType = b.arena.Prod(init).Type
	}
	b.expect(token.SEMICOLON)

	rng := b.rangeAt(start)
	decl := b.arena.AddGlobalDecl(rng, name, declaredType, mutable, init)
	if err := b.mods.Declare(b.mod, name, module.Global{Kind: module.GlobalVariable, Var: decl, Type: declaredType}); err != nil {
		b.errorf(rng, "%s", err)
	}
	return decl
}
