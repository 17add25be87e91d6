package lexer

import (
	"chai/internal/token"
)

// operators is searched longest match first for each leading rune.
var operators = map[rune][]token.TokenType{
	'+': {token.PLUS_ASSIGN, token.PLUS},
	'-': {token.MINUS_ASSIGN, token.ARROW, token.MINUS},
	'*': {token.POWER_ASSIGN, token.POWER, token.ASTERISK_ASSIGN, token.ASTERISK},
	'/': {token.INT_DIV_ASSIGN, token.INT_DIV, token.SLASH_ASSIGN, token.SLASH},
	'%': {token.PERCENT_ASSIGN, token.PERCENT},
	'<': {token.SHIFT_LEFT_ASSIGN, token.SHIFT_LEFT, token.LT_EQ, token.LT},
	'>': {token.SHIFT_RIGHT_ASSIGN, token.SHIFT_RIGHT, token.GT_EQ, token.GT},
	'=': {token.EQ, token.ASSIGN},
	'!': {token.NOT_EQ},
	':': {token.CONS, token.COLON},
	'&': {token.BITWISE_AND_ASSIGN, token.BITWISE_AND},
	'|': {token.BITWISE_OR_ASSIGN, token.BITWISE_OR},
	'^': {token.BITWISE_XOR_ASSIGN, token.BITWISE_XOR},
	'~': {token.COMPLEMENT},
	',': {token.COMMA},
}

func (l *Lexer) generalToken() token.Token {
	startPosition := l.position

	switch l.ch {
	case '(':
		l.depth++
		return l.single(token.LPAREN)
	case '[':
		l.depth++
		return l.single(token.LBRACKET)
	case '{':
		l.depth++
		return l.single(token.LBRACE)
	case ')':
		l.closeGroup()
		return l.single(token.RPAREN)
	case ']':
		l.closeGroup()
		return l.single(token.RBRACKET)
	case '}':
		l.closeGroup()
		return l.single(token.RBRACE)
	case '"':
		str, ok := l.readString()
		if !ok {
			return l.illegal(startPosition, "unterminated string literal")
		}
		return token.Token{Type: token.STRING, Literal: str, Position: startPosition}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.RANGE, Literal: "..", Position: startPosition}
		}
		if isDigit(l.peekChar()) {
			literal, kind := l.readNumber()
			return token.Token{Type: kind, Literal: literal, Position: startPosition}
		}
		l.readChar()
		return l.illegal(startPosition, "stray '.' in program")
	}

	if candidates, ok := operators[l.ch]; ok {
		for _, candidate := range candidates {
			if l.hasPrefix(string(candidate)) {
				for range candidate {
					l.readChar()
				}
				return token.Token{Type: candidate, Literal: string(candidate), Position: startPosition}
			}
		}
		ch := l.ch
		l.readChar()
		return l.illegal(startPosition, "unexpected character '%c'", ch)
	}

	if isLetter(l.ch) {
		literal := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(literal), Literal: literal, Position: startPosition}
	}
	if isDigit(l.ch) {
		literal, kind := l.readNumber()
		return token.Token{Type: kind, Literal: literal, Position: startPosition}
	}

	ch := l.ch
	l.readChar()
	return l.illegal(startPosition, "unexpected character '%c'", ch)
}

func (l *Lexer) single(t token.TokenType) token.Token {
	tok := newToken(t, l.ch, l.position)
	l.readChar()
	return tok
}

func (l *Lexer) closeGroup() {
	if l.depth > 0 {
		l.depth--
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	return len(l.input)-l.position >= len(s) && l.input[l.position:l.position+len(s)] == s
}
