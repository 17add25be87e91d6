package parser

import (
	"chai/internal/ast"
	"chai/internal/token"
)

var baseTypes = map[token.TokenType]string{
	token.TYPE_INT:    "Int",
	token.TYPE_FLOAT:  "Float",
	token.TYPE_BOOL:   "Bool",
	token.TYPE_STRING: "String",
	token.TYPE_VOID:   "Void",
}

// parseType reads a type annotation starting at curToken and leaves curToken
// on its last token. `A -> B -> R` becomes a Function type with Subs [R, A, B].
func (p *Parser) parseType() *ast.TypeExpr {
	tok := p.curToken

	var params []*ast.TypeExpr
	if p.curTokenIs(token.LPAREN) && p.peekTokenIs(token.RPAREN) {
		// () only introduces a function without parameters
		p.nextToken()
		if !p.peekTokenIs(token.ARROW) {
			p.addError("empty parentheses are only allowed before '->'")
			return nil
		}
	} else {
		first := p.parseBaseType()
		if first == nil {
			return nil
		}
		if !p.peekTokenIs(token.ARROW) {
			return first
		}
		params = append(params, first)
	}

	for p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		next := p.parseBaseType()
		if next == nil {
			return nil
		}
		params = append(params, next)
	}

	ret := params[len(params)-1]
	params = params[:len(params)-1]
	for _, param := range params {
		if param.Name == "Void" {
			p.addErrorAt(param.Token.Position, "Void is only allowed as a return type")
			return nil
		}
	}
	return &ast.TypeExpr{Token: tok, Name: "Function", Subs: append([]*ast.TypeExpr{ret}, params...)}
}

func (p *Parser) parseBaseType() *ast.TypeExpr {
	tok := p.curToken

	if name, ok := baseTypes[tok.Type]; ok {
		return &ast.TypeExpr{Token: tok, Name: name}
	}

	switch tok.Type {
	case token.LBRACKET:
		p.nextToken()
		elem := p.parseType()
		if elem == nil || !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.TypeExpr{Token: tok, Name: "List", Subs: []*ast.TypeExpr{elem}}

	case token.LBRACE:
		p.nextToken()
		key := p.parseType()
		if key == nil {
			return nil
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			value := p.parseType()
			if value == nil || !p.expectPeek(token.RBRACE) {
				return nil
			}
			return &ast.TypeExpr{Token: tok, Name: "Dict", Subs: []*ast.TypeExpr{key, value}}
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return &ast.TypeExpr{Token: tok, Name: "Set", Subs: []*ast.TypeExpr{key}}

	case token.LPAREN:
		p.nextToken()
		first := p.parseType()
		if first == nil {
			return nil
		}
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return first
		}
		subs := []*ast.TypeExpr{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			sub := p.parseType()
			if sub == nil {
				return nil
			}
			subs = append(subs, sub)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.TypeExpr{Token: tok, Name: "Tuple", Subs: subs}
	}

	if tok.Type == token.ILLEGAL {
		p.addError("%s", tok.Literal)
	} else {
		p.addError("expected a type, got %s", describe(tok))
	}
	return nil
}
