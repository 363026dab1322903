package builder

import (
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// parseConditional implements §4.4.7: `if` COND SCOPE (`elif` COND
// SCOPE)* (`else` SCOPE)?. `elif` desugars into a nested `if` sitting in
// the else branch, so only two-way StmtConditionKind nodes ever exist in
// the arena. Each branch parses its scope independently from a snapshot
// of the local variable table, and the two branches' outcomes are merged
// back via bitwise OR (§3.6) once both have run.
func (b *Builder) parseConditional() expr.Stmt {
	start := b.peekPos()
	b.advance() // `if` or `elif`

	cond := b.parseCondition()

	before := b.snapshotLocalStates()
	then := b.parseScope()
	afterThen := b.snapshotLocalStates()

	b.restoreLocalStates(before)
	els := b.parseElseBranch()
	afterElse := b.snapshotLocalStates()
	if !els.Valid() {
		// No else: the untaken path is "no change", i.e. the pre-branch
		// state itself.
		afterElse = before
	}

	b.mergeLocalStatesFrom(afterThen)
	b.mergeLocalStatesFrom(afterElse)

	rng := b.rangeAt(start)
	if b.isLiteral(cond) {
		// §4.4.4: a guard that folds to a literal collapses to the taken
		// branch (or to an empty scope if none exists), rather than
		// surviving as a ConditionExpr. Both branches are still parsed
		// above so their diagnostics fire either way.
		if b.arena.Prod(cond).Literal != 0 {
			return then
		}
		if els.Valid() {
			return els
		}
		return b.arena.AddScope(rng, nil, nil)
	}
	return b.arena.AddCondition(rng, cond, then, els)
}

// parseCondition parses the guard expression, rewriting a bare boolean
// read into `cond == true` so later passes uniformly see a comparison
// (§4.4.7), and diagnosing a non-boolean guard.
func (b *Builder) parseCondition() expr.Prod {
	rng0 := b.peekPos()
	cond := b.parseExpression()
	rng := b.rangeAt(rng0)

	ct := b.arena.Prod(cond).Type
	if b.types.Kind(ct) == types.KindError {
		return cond
	}
	if b.types.Kind(ct) != types.KindBool {
		b.errorf(rng, "condition must be of boolean type, got %s", b.typeName(ct))
		return b.arena.AddError(rng)
	}

	n := b.arena.Prod(cond)
	if n.Kind == expr.ProdVarReadKind || n.Kind == expr.ProdGlobalReadKind {
		trueLit := b.arena.AddLiteral(rng, b.types.Bool, 1)
		return b.buildComparison(rng, token.EQ, cond, trueLit)
	}
	return cond
}

// parseElseBranch parses the `else` SCOPE or `elif` continuation, or
// returns InvalidStmt if neither is present.
func (b *Builder) parseElseBranch() expr.Stmt {
	switch b.kind() {
	case token.ELIF:
		return b.parseConditional()
	case token.ELSE:
		b.advance()
		return b.parseScope()
	default:
		return expr.InvalidStmt
	}
}

// parseScope implements §4.4.6: a `{ ... }` block, or a single statement
// introduced by `:`. On exit the local variable table is truncated back
// to its size at entry, so declarations made inside the scope do not
// leak into the enclosing one.
func (b *Builder) parseScope() expr.Stmt {
	start := b.peekPos()
	entryLocals := len(b.locals)
	b.scopeDepth++
	defer func() {
		b.scopeDepth--
		b.locals = b.locals[:entryLocals]
	}()

	if _, ok := b.match(token.COLON); ok {
		stmt := b.parseStatement()
		rng := b.rangeAt(start)
		return b.arena.AddScope(rng, []expr.Stmt{stmt}, scopeDecls(b.arena, []expr.Stmt{stmt}))
	}

	if _, ok := b.expect(token.LBRACE); !ok {
		return b.arena.AddStmtError(b.rangeAt(start))
	}

	var children []expr.Stmt
	for b.kind() != token.RBRACE && b.kind() != token.EOF {
		children = append(children, b.parseTopLevelStatement())
	}
	b.expect(token.RBRACE)

	rng := b.rangeAt(start)
	return b.arena.AddScope(rng, children, scopeDecls(b.arena, children))
}

// scopeDecls filters children down to the declarations introduced
// directly in this scope, preserving their order (§4.4.5 "pushed into
// the current scope's declaration list").
func scopeDecls(a *expr.Arena, children []expr.Stmt) []expr.Stmt {
	var decls []expr.Stmt
	for _, c := range children {
		switch a.Stmt(c).Kind {
		case expr.StmtVarDeclKind, expr.StmtGlobalDeclKind:
			decls = append(decls, c)
		}
	}
	return decls
}
