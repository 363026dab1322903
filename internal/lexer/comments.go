package lexer

import "github.com/colt-lang/coltc/pkg/token"

// skipLineComment consumes a `//` comment through end of line, exclusive.
func (l *Lexer) skipLineComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.advance()
	}
}

// skipBlockComment consumes a `/* ... */` comment, including nested block
// comments. start is the position of the opening '/'. Nesting is bounded
// at maxCommentDepth; exceeding it unwinds via the commentDepthExceeded
// panic rather than recursing further, and run's deferred recover reports
// it as a single diagnostic (§4.1, §8 boundary behavior).
func (l *Lexer) skipBlockComment(start token.Position) {
	l.skipBlockCommentAt(start, 1)
}

func (l *Lexer) skipBlockCommentAt(start token.Position, depth int) {
	if depth > maxCommentDepth {
		panic(commentDepthExceeded{pos: start})
	}
	// consume the '*' that opened this level
	l.advance()
	for {
		if l.atEOF() {
			l.rep.Error("unterminated block comment", nil, 0)
			return
		}
		switch {
		case l.ch == '*' && l.peek() == '/':
			l.advance()
			l.advance()
			return
		case l.ch == '/' && l.peek() == '*':
			nestedStart := l.here(2)
			l.advance()
			l.skipBlockCommentAt(nestedStart, depth+1)
		default:
			l.advance()
		}
	}
}
