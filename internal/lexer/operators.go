package lexer

import (
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

// emitMatched appends a two-rune token for an operator whose second rune
// has already been consumed via l.match; start is the position before
// either rune was read.
func emitMatched(l *Lexer, start token.Position, tt token.Type) (source.TokenHandle, bool) {
	start.Length = 2
	return l.buf.AppendToken(tt, start), true
}

func (l *Lexer) handlePlus() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('=') {
		return emitMatched(l, pos, token.PLUS_ASSIGN)
	}
	return l.buf.AppendToken(token.PLUS, pos), true
}

func (l *Lexer) handleMinus() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	switch {
	case l.match('='):
		return emitMatched(l, pos, token.MINUS_ASSIGN)
	case l.match('>'):
		return emitMatched(l, pos, token.ARROW)
	}
	return l.buf.AppendToken(token.MINUS, pos), true
}

func (l *Lexer) handleStar() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('=') {
		return emitMatched(l, pos, token.STAR_ASSIGN)
	}
	return l.buf.AppendToken(token.STAR, pos), true
}

// handleSlash dispatches between division, compound-assign division, and
// comments: the byte table routes '/' here rather than to a dedicated
// comment entry, since only a one-rune lookahead distinguishes them.
func (l *Lexer) handleSlash() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	switch {
	case l.ch == '/':
		l.skipLineComment()
		return source.InvalidHandle, false
	case l.ch == '*':
		l.skipBlockComment(pos)
		return source.InvalidHandle, false
	case l.match('='):
		return emitMatched(l, pos, token.SLASH_ASSIGN)
	}
	return l.buf.AppendToken(token.SLASH, pos), true
}

func (l *Lexer) handlePercent() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('=') {
		return emitMatched(l, pos, token.PERCENT_ASSIGN)
	}
	return l.buf.AppendToken(token.PERCENT, pos), true
}

func (l *Lexer) handleEquals() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('=') {
		return emitMatched(l, pos, token.EQ)
	}
	return l.buf.AppendToken(token.ASSIGN, pos), true
}

func (l *Lexer) handleLess() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	switch {
	case l.match('='):
		return emitMatched(l, pos, token.LE)
	case l.ch == '<':
		l.advance()
		if l.match('=') {
			pos.Length = 3
			return l.buf.AppendToken(token.SHL_ASSIGN, pos), true
		}
		return emitMatched(l, pos, token.SHL)
	}
	return l.buf.AppendToken(token.LT, pos), true
}

func (l *Lexer) handleGreater() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	switch {
	case l.match('='):
		return emitMatched(l, pos, token.GE)
	case l.ch == '>':
		l.advance()
		if l.match('=') {
			pos.Length = 3
			return l.buf.AppendToken(token.SHR_ASSIGN, pos), true
		}
		return emitMatched(l, pos, token.SHR)
	}
	return l.buf.AppendToken(token.GT, pos), true
}

func (l *Lexer) handleBang() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('=') {
		return emitMatched(l, pos, token.NE)
	}
	return l.buf.AppendToken(token.BANG, pos), true
}

func (l *Lexer) handleAmp() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	switch {
	case l.match('&'):
		return emitMatched(l, pos, token.ANDAND)
	case l.match('='):
		return emitMatched(l, pos, token.AMP_ASSIGN)
	}
	return l.buf.AppendToken(token.AMP, pos), true
}

func (l *Lexer) handlePipe() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	switch {
	case l.match('|'):
		return emitMatched(l, pos, token.OROR)
	case l.match('='):
		return emitMatched(l, pos, token.PIPE_ASSIGN)
	}
	return l.buf.AppendToken(token.PIPE, pos), true
}

func (l *Lexer) handleCaret() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('=') {
		return emitMatched(l, pos, token.CARET_ASSIGN)
	}
	return l.buf.AppendToken(token.CARET, pos), true
}

func (l *Lexer) handleDot() (source.TokenHandle, bool) {
	pos := l.here(1)
	l.advance()
	if l.match('.') {
		return emitMatched(l, pos, token.DOTDOT)
	}
	return l.buf.AppendToken(token.DOT, pos), true
}
