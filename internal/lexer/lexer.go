package lexer

import (
	"chai/internal/token"
	"fmt"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF

	depth       int  // nesting of (), [] and {}; newlines inside are ignored
	atLineStart bool // the next token is the first on a physical line
	indentWidth int  // columns per level, fixed by the first indented line
	indentLevel int
	pending     []token.Token // INDENT / DEDENT tokens not yet handed out
	last        token.TokenType
}

type Tokenizer interface {
	NextToken() token.Token
}

func New(input string) *Lexer {
	l := &Lexer{input: input, atLineStart: true, last: token.NEWLINE}
	l.readChar()
	return l
}

// NextToken returns the next token, synthesising NEWLINE, INDENT and DEDENT
// from the layout of the source.
func (l *Lexer) NextToken() token.Token {
	tok := l.nextToken()
	l.last = tok.Type
	return tok
}

func (l *Lexer) nextToken() token.Token {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}

		if l.atLineStart && l.depth == 0 {
			if tok, ok := l.readIndentation(); ok {
				return tok
			}
			if len(l.pending) > 0 {
				continue
			}
		}

		l.skipWhitespace()

		switch l.ch {
		case '\n':
			pos := l.position
			l.readChar()
			if l.depth > 0 {
				continue
			}
			l.atLineStart = true
			return token.Token{Type: token.NEWLINE, Literal: "\\n", Position: pos}
		case 0:
			return l.finish()
		}

		return l.generalToken()
	}
}

// finish closes any open line and block before handing out EOF.
func (l *Lexer) finish() token.Token {
	pos := len(l.input)
	if l.last != token.NEWLINE && l.last != token.DEDENT && l.last != token.INDENT {
		l.last = token.NEWLINE
		return token.Token{Type: token.NEWLINE, Literal: "\\n", Position: pos}
	}
	if l.indentLevel > 0 {
		l.indentLevel--
		return token.Token{Type: token.DEDENT, Position: pos}
	}
	return token.Token{Type: token.EOF, Position: pos}
}

// readIndentation measures the leading whitespace of a line. Blank and
// comment-only lines are consumed entirely. Indentation changes are queued on
// l.pending; an ILLEGAL token is returned directly.
func (l *Lexer) readIndentation() (token.Token, bool) {
	for {
		start := l.position
		columns := 0
		for l.ch == ' ' || l.ch == '\t' {
			columns++
			l.readChar()
		}
		switch l.ch {
		case '\r', '\n', '#':
			l.skipToLineEnd()
			if l.ch == '\n' {
				l.readChar()
			}
			continue
		case 0:
			l.atLineStart = false
			return token.Token{}, false
		}
		l.atLineStart = false

		if columns > 0 && l.indentWidth == 0 {
			l.indentWidth = columns
		}
		level := 0
		if columns > 0 {
			if columns%l.indentWidth != 0 {
				return l.illegal(start, "indentation of %d is not a multiple of the indent width %d", columns, l.indentWidth), true
			}
			level = columns / l.indentWidth
		}

		switch {
		case level == l.indentLevel+1:
			l.indentLevel++
			l.pending = append(l.pending, token.Token{Type: token.INDENT, Position: l.position})
		case level > l.indentLevel:
			return l.illegal(start, "unexpected indentation of more than one level"), true
		case level < l.indentLevel:
			for ; l.indentLevel > level; l.indentLevel-- {
				l.pending = append(l.pending, token.Token{Type: token.DEDENT, Position: l.position})
			}
		}
		return token.Token{}, false
	}
}

func (l *Lexer) illegal(position int, format string, args ...interface{}) token.Token {
	return token.Token{Type: token.ILLEGAL, Literal: fmt.Sprintf(format, args...), Position: position}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '#':
			l.skipToLineEnd()
		case '\\':
			// explicit line continuation
			if l.peekChar() == '\n' {
				l.readChar()
				l.readChar()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// peekTwoChars returns the rune after next without advancing; returns 0 if unavailable
func (l *Lexer) peekTwoChars() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	idx := l.readPosition + size
	if idx >= len(l.input) {
		return 0
	}
	r2, _ := utf8.DecodeRuneInString(l.input[idx:])
	return r2
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an integer or float literal and reports which it was.
func (l *Lexer) readNumber() (string, token.TokenType) {
	start := l.position
	kind := token.TokenType(token.INT)
	for isDigit(l.ch) {
		l.readChar()
	}
	// "1..5" is a range, not a float
	if l.ch == '.' && l.peekChar() != '.' {
		kind = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekTwoChars())) {
			kind = token.FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.input[start:l.position], kind
}

// readString returns the raw text between the quotes; escapes are left in
// place and decoded when the value is built.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // opening "
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.position], false
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return l.input[start:l.position], false
			}
		}
		l.readChar()
	}
	str := l.input[start:l.position]
	l.readChar() // closing "
	return str, true
}

// Unicode-aware helpers
func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, ch rune, position int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Position: position}
}
