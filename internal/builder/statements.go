package builder

import (
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/pkg/token"
)

// parseStatement dispatches on the current token to the matching
// production (§4.4): a declaration, a conditional, a nested scope, a
// visibility marker, or an expression evaluated for effect.
func (b *Builder) parseStatement() expr.Stmt {
	b.enter()
	defer b.exit()

	switch b.kind() {
	case token.VAR, token.LET:
		if b.atModuleScope() {
			return b.parseGlobalVarDecl()
		}
		return b.parseVarDecl()
	case token.IF:
		return b.parseConditional()
	case token.LBRACE:
		return b.parseScope()
	case token.PUBLIC, token.PRIVATE:
		return b.parseVisibilityMarker()
	default:
		return b.parseExprStatement()
	}
}

// atModuleScope reports whether the cursor is parsing a top-level
// statement rather than one nested inside a function or scope body: a
// `var`/`let` here declares a global (§4.4.5), everywhere else it
// declares a local.
func (b *Builder) atModuleScope() bool { return b.scopeDepth == 0 }

// parseExprStatement parses a bare expression (most commonly an
// assignment or a call) used for its effect, then consumes the
// terminating semicolon.
func (b *Builder) parseExprStatement() expr.Stmt {
	start := b.peekPos()
	value := b.parseExpression()
	rng := b.rangeAt(start)
	if _, ok := b.expect(token.SEMICOLON); !ok {
		return b.arena.AddStmtError(rng)
	}
	return b.arena.AddExprStmt(rng, value)
}

// parseVisibilityMarker consumes a `public:`/`private:` section marker.
// The builder has no notion of per-symbol visibility beyond recording
// which section is active for the redundant_visibility warning (§6.2):
// repeating the marker that is already active warns, whether or not
// declarations come between the two.
func (b *Builder) parseVisibilityMarker() expr.Stmt {
	start := b.peekPos()
	kw := b.kind()
	b.advance()
	rng := b.rangeAt(start)
	if _, ok := b.expect(token.COLON); !ok {
		return b.arena.AddStmtError(rng)
	}
	if b.warn.RedundantVisibility && b.lastVisibility == kw {
		b.warnf(rng, "repeated %s visibility marker", tokenName(kw))
	}
	b.lastVisibility = kw
	return b.arena.AddExprStmt(rng, b.arena.AddNoOp(rng))
}

func tokenName(tt token.Type) string {
	if tt == token.PUBLIC {
		return "public"
	}
	return "private"
}
