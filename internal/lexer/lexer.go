// Package lexer implements the table-driven, single-pass tokenizer (§4.1).
// It consumes a borrowed source string and a diagnostic reporter and
// produces a populated source.Buffer; it never returns an error itself —
// lexical failures are reported and represented as ERROR tokens so the
// token stream stays aligned with the source (§4.1 "Failure semantics").
package lexer

import (
	"fmt"

	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

// maxCommentDepth bounds nested block comments (§4.1, §8 boundary behavior:
// depth 255 succeeds, 256 aborts).
const maxCommentDepth = 255

// commentDepthExceeded is the bounded internal escape (§5, §9 "Bounded
// internal escape") used to unwind out of recursive comment parsing
// without it ever surfacing past Lex.
type commentDepthExceeded struct{ pos token.Position }

// tokenHandler consumes whatever starts at the lexer's current position.
// emitted reports whether it appended a token (false for whitespace and
// comments, which never produce a token).
type tokenHandler func(l *Lexer) (h source.TokenHandle, emitted bool)

// Option configures a Lexer.
type Option func(*Lexer)

// WithPreserveComments sets the Lexer's preserveComments flag. No handler
// reads that flag: comments are skipped and produce no token whether or
// not this option is given.
func WithPreserveComments() Option { return func(l *Lexer) { l.preserveComments = true } }

// Lexer tokenizes a single compilation unit's source text into a
// source.Buffer, single-pass and restart-free.
type Lexer struct {
	input []rune
	buf   *source.Buffer
	rep   diag.Reporter

	pos  int // index into input of the rune after ch
	line int
	col  int // 1-based rune column of ch

	ch rune

	preserveComments bool
	dispatch         [256]tokenHandler
}

// New creates a Lexer over src, reporting lexical diagnostics to rep.
func New(src string, rep diag.Reporter, opts ...Option) *Lexer {
	runes := []rune(src)
	if len(runes) > 0 && runes[0] == 0xFEFF {
		runes = runes[1:]
	}
	l := &Lexer{
		input: runes,
		buf:   source.New(src),
		rep:   rep,
		line:  1,
	}
	for _, o := range opts {
		o(l)
	}
	l.buildDispatch()
	l.advance()
	return l
}

func (l *Lexer) buildDispatch() {
	for b := 0; b < 256; b++ {
		l.dispatch[b] = (*Lexer).handleIllegal
	}
	for _, b := range []byte(" \t\r\n") {
		l.dispatch[b] = (*Lexer).handleWhitespace
	}
	for b := byte('0'); b <= '9'; b++ {
		l.dispatch[b] = (*Lexer).handleNumber
	}
	for b := byte('a'); b <= 'z'; b++ {
		l.dispatch[b] = (*Lexer).handleIdentifier
	}
	for b := byte('A'); b <= 'Z'; b++ {
		l.dispatch[b] = (*Lexer).handleIdentifier
	}
	l.dispatch['_'] = (*Lexer).handleIdentifier

	l.dispatch['+'] = (*Lexer).handlePlus
	l.dispatch['-'] = (*Lexer).handleMinus
	l.dispatch['*'] = (*Lexer).handleStar
	l.dispatch['/'] = (*Lexer).handleSlash
	l.dispatch['%'] = (*Lexer).handlePercent
	l.dispatch['='] = (*Lexer).handleEquals
	l.dispatch['<'] = (*Lexer).handleLess
	l.dispatch['>'] = (*Lexer).handleGreater
	l.dispatch['!'] = (*Lexer).handleBang
	l.dispatch['&'] = (*Lexer).handleAmp
	l.dispatch['|'] = (*Lexer).handlePipe
	l.dispatch['^'] = (*Lexer).handleCaret
	l.dispatch['~'] = single(token.TILDE)
	l.dispatch[';'] = single(token.SEMICOLON)
	l.dispatch[','] = single(token.COMMA)
	l.dispatch['{'] = single(token.LBRACE)
	l.dispatch['}'] = single(token.RBRACE)
	l.dispatch['('] = single(token.LPAREN)
	l.dispatch[')'] = single(token.RPAREN)
	l.dispatch['['] = single(token.LBRACKET)
	l.dispatch[']'] = single(token.RBRACKET)
	l.dispatch[':'] = single(token.COLON)
	l.dispatch['.'] = (*Lexer).handleDot
	l.dispatch['"'] = (*Lexer).handleString
	l.dispatch['\''] = (*Lexer).handleChar
	l.dispatch['#'] = (*Lexer).handleChar
}

// single returns a handler emitting a fixed single-rune token.
func single(tt token.Type) tokenHandler {
	return func(l *Lexer) (source.TokenHandle, bool) {
		pos := l.here(1)
		l.advance()
		return l.buf.AppendToken(tt, pos), true
	}
}

func (l *Lexer) here(length int) token.Position {
	return token.Position{Line: l.line, Column: l.col, Length: length}
}

func (l *Lexer) atEOF() bool { return l.pos > len(l.input) || (l.pos == len(l.input) && l.ch == 0) }

// advance moves to the next rune, tracking line/column. Once end of input
// is reached it never advances again: this is the corrected behavior for
// what the source lexer's inverted "consume_current" assertion was meant
// to guarantee — do not advance past EOF (§9 open questions).
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) rune {
	idx := l.pos + n - 1
	if idx < 0 || idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

func (l *Lexer) match(want rune) bool {
	if l.peek() == want {
		l.advance()
		return true
	}
	return false
}

func isASCIILetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentContinue(r rune) bool { return isASCIILetter(r) || isASCIIDigit(r) }

// Lex consumes the entire input and returns the populated token buffer.
func Lex(src string, rep diag.Reporter, opts ...Option) *source.Buffer {
	l := New(src, rep, opts...)
	return l.run()
}

// run drives the dispatch loop to completion. If nested comments exceed
// maxCommentDepth, skipBlockCommentAt panics with commentDepthExceeded;
// that unwinds straight to the deferred recover here, which reports the
// overflow and forces an EOF rather than letting the escape reach Lex's
// caller (§5 "Lex comment abort").
func (l *Lexer) run() (buf *source.Buffer) {
	buf = l.buf
	defer func() {
		if r := recover(); r != nil {
			esc, ok := r.(commentDepthExceeded)
			if !ok {
				panic(r)
			}
			l.rep.Error("exceeded recursion depth", &source.SourceInfo{
				LineBegin: esc.pos.Line, LineEnd: esc.pos.Line,
			}, 0)
			l.buf.AppendToken(token.EOF, l.here(0))
		}
	}()

	for !l.atEOF() {
		b := l.ch
		var handler tokenHandler
		if b >= 0 && b < 256 {
			handler = l.dispatch[byte(b)]
		} else {
			handler = (*Lexer).handleIllegal
		}
		handler(l)
	}
	l.buf.AppendToken(token.EOF, l.here(0))
	return l.buf
}

func (l *Lexer) handleWhitespace() (source.TokenHandle, bool) {
	l.advance()
	return source.InvalidHandle, false
}

func (l *Lexer) handleIllegal() (source.TokenHandle, bool) {
	pos := l.here(1)
	ch := l.ch
	l.advance()
	l.rep.Error(fmt.Sprintf("invalid character %q", ch), nil, 0)
	return l.buf.AppendToken(token.ILLEGAL, pos), true
}
