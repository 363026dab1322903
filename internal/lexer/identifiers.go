package lexer

import (
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

// handleIdentifier reads a maximal run of identifier characters and
// classifies it as a keyword, a built-in type name, or a plain identifier
// via the perfect-hash keyword table. A name with the reserved
// triple-underscore prefix is reported and emitted as an ILLEGAL token.
func (l *Lexer) handleIdentifier() (source.TokenHandle, bool) {
	startLine, startCol := l.line, l.col
	var sb []rune
	for isIdentContinue(l.ch) {
		sb = append(sb, l.ch)
		l.advance()
	}
	name := string(sb)
	pos := token.Position{Line: startLine, Column: startCol, Length: l.col - startCol}

	if kind := token.LookupIdent(name); kind != token.IDENT {
		return l.buf.AppendToken(kind, pos), true
	}
	if token.IsReservedUnderscorePrefix(name) {
		l.rep.Error("identifiers beginning with three underscores are reserved", nil, 0)
		return l.buf.AppendToken(token.ILLEGAL, pos), true
	}
	return l.buf.AppendIdentifier(name, token.IDENT, pos), true
}
