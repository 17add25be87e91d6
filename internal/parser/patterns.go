package parser

import (
	"chai/internal/ast"
	"chai/internal/token"
)

// parsePattern reads `single (:: single)*` and leaves curToken on the last
// token of the pattern.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseSinglePattern()
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.CONS) {
		return first
	}

	cons := &ast.ConsPattern{Heads: []ast.Pattern{first}}
	for p.peekTokenIs(token.CONS) {
		p.nextToken()
		if cons.Token.Type == "" {
			cons.Token = p.curToken
		}
		p.nextToken()
		next := p.parseSinglePattern()
		if next == nil {
			return nil
		}
		cons.Heads = append(cons.Heads, next)
	}
	cons.Tail = cons.Heads[len(cons.Heads)-1]
	cons.Heads = cons.Heads[:len(cons.Heads)-1]
	return cons
}

func (p *Parser) parseSinglePattern() ast.Pattern {
	tok := p.curToken

	switch tok.Type {
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Token: tok}

	case token.IDENT:
		return &ast.BindingPattern{Token: tok, Name: tok.Literal}

	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE:
		value := p.prefixParseFns[tok.Type]()
		if value == nil {
			return nil
		}
		return &ast.LiteralPattern{Token: tok, Value: value}

	case token.MINUS:
		if !p.peekTokenIs(token.INT) && !p.peekTokenIs(token.FLOAT) {
			p.addErrorAt(p.peekToken.Position, "expected a number after '-' in pattern, got %s", describe(p.peekToken))
			return nil
		}
		p.nextToken()
		operand := p.prefixParseFns[p.curToken.Type]()
		if operand == nil {
			return nil
		}
		return &ast.LiteralPattern{
			Token: tok,
			Value: &ast.PrefixExpression{Token: tok, Operator: "-", Right: operand},
		}

	case token.LPAREN:
		p.nextToken()
		first := p.parsePattern()
		if first == nil {
			return nil
		}
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return first
		}
		elements := []ast.Pattern{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			el := p.parsePattern()
			if el == nil {
				return nil
			}
			elements = append(elements, el)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.TuplePattern{Token: tok, Elements: elements}

	case token.LBRACKET:
		lp := &ast.ListPattern{Token: tok, Elements: []ast.Pattern{}}
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			return lp
		}
		for {
			p.nextToken()
			el := p.parsePattern()
			if el == nil {
				return nil
			}
			lp.Elements = append(lp.Elements, el)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return lp
	}

	if tok.Type == token.ILLEGAL {
		p.addError("%s", tok.Literal)
	} else {
		p.addError("expected a pattern, got %s", describe(tok))
	}
	return nil
}
