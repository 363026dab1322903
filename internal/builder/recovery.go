package builder

import (
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/pkg/token"
)

// panicConsumer advances the cursor to a recovery point. Consumers are
// idempotent: calling one a second time without an intervening advance
// must not consume further (§4.4.8).
type panicConsumer func()

// withPanicConsumer installs consumer as the panic consumer for the
// duration of fn, restoring whatever was previously installed afterward —
// a scoped-assignment guard (§9 "scoped state") implemented with a plain
// defer rather than a dedicated guard type, since Go's defer already gives
// exception-safe release on every exit path.
func (b *Builder) withPanicConsumer(consumer panicConsumer, fn func() expr.Stmt) expr.Stmt {
	b.consume = append(b.consume, consumer)
	defer func() { b.consume = b.consume[:len(b.consume)-1] }()
	return fn()
}

// panicConsume invokes the currently installed panic consumer, or
// consumeToSemicolon if none is installed (the top-level default).
func (b *Builder) panicConsume() {
	if len(b.consume) == 0 {
		b.consumeToSemicolon()
		return
	}
	b.consume[len(b.consume)-1]()
}

// consumeToSemicolon advances past tokens up to and including the next
// semicolon, or to EOF if none is found. It is idempotent: calling it
// again immediately after, with the cursor already sitting just past a
// semicolon or at EOF, consumes nothing further.
func (b *Builder) consumeToSemicolon() {
	for b.kind() != token.SEMICOLON && b.kind() != token.EOF {
		b.advance()
	}
	if b.kind() == token.SEMICOLON {
		b.advance()
	}
}

// consumeToLeftParen advances up to (but not including) the next LPAREN
// or EOF.
func (b *Builder) consumeToLeftParen() {
	b.consumeToToken(token.LPAREN)
}

// consumeToToken advances up to (but not including) the next occurrence
// of tt, or EOF if none is found.
func (b *Builder) consumeToToken(tt token.Type) {
	for b.kind() != tt && b.kind() != token.EOF {
		b.advance()
	}
}
