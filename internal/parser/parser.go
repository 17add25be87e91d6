package parser

import (
	"chai/internal/ast"
	"chai/internal/lexer"
	"chai/internal/token"
	"chai/internal/util"
	"fmt"
	"strconv"
	"strings"
)

const (
	_ int = iota
	LOWEST
	CONDITIONAL // x if c else y
	LOGICAL_OR  // or
	LOGICAL_AND // and
	LOGICAL_NOT // not x
	COMPARISON  // < == in
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	SHIFT       // << >>
	CONS        // x :: xs
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or ~X
	POWER       // **
	CALL        // myFunction(X) or list[index]
)

var precedences = map[token.TokenType]int{
	token.IF:          CONDITIONAL,
	token.OR:          LOGICAL_OR,
	token.AND:         LOGICAL_AND,
	token.EQ:          COMPARISON,
	token.NOT_EQ:      COMPARISON,
	token.LT:          COMPARISON,
	token.LT_EQ:       COMPARISON,
	token.GT:          COMPARISON,
	token.GT_EQ:       COMPARISON,
	token.IN:          COMPARISON,
	token.NOT:         COMPARISON, // not in
	token.BITWISE_OR:  BITWISE_OR,
	token.BITWISE_XOR: BITWISE_XOR,
	token.BITWISE_AND: BITWISE_AND,
	token.SHIFT_LEFT:  SHIFT,
	token.SHIFT_RIGHT: SHIFT,
	token.CONS:        CONS,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.ASTERISK:    PRODUCT,
	token.SLASH:       PRODUCT,
	token.INT_DIV:     PRODUCT,
	token.PERCENT:     PRODUCT,
	token.POWER:       POWER,
	token.LPAREN:      CALL,
	token.LBRACKET:    CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokenizer lexer.Tokenizer
	src       string // source code here
	errors    []string

	// Interactive admits any statement at the top level (used by the REPL).
	Interactive bool

	curToken  token.Token
	peekToken token.Token
	depth     int // open INDENTs at curToken

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l lexer.Tokenizer, source string) *Parser {
	p := &Parser{
		tokenizer: l,
		src:       source,
		errors:    []string{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.COMPLEMENT, p.parsePrefixExpression)
	p.registerPrefix(token.NOT, p.parseNotExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseBracketExpression)
	p.registerPrefix(token.LBRACE, p.parseBraceExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.INT_DIV, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LT_EQ, token.GT, token.GT_EQ, token.IN,
		token.BITWISE_AND, token.BITWISE_OR, token.BITWISE_XOR, token.SHIFT_LEFT, token.SHIFT_RIGHT,
		token.AND, token.OR,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(token.POWER, p.parseRightAssociative)
	p.registerInfix(token.CONS, p.parseRightAssociative)
	p.registerInfix(token.NOT, p.parseNotInExpression)
	p.registerInfix(token.IF, p.parseConditionalExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokenizer.NextToken()
	switch p.curToken.Type {
	case token.INDENT:
		p.depth++
	case token.DEDENT:
		p.depth--
	}
}

func tokenEnd(t token.Token) int {
	switch t.Type {
	case token.STRING:
		return t.Position + len(t.Literal) + 2
	case token.NEWLINE, token.INDENT, token.DEDENT, token.EOF:
		return t.Position
	}
	return t.Position + len(t.Literal)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addError(message string, args ...interface{}) {
	p.addErrorAt(p.curToken.Position, message, args...)
}

func (p *Parser) addErrorAt(pos int, message string, args ...interface{}) {
	line, col := util.GetLineAndColumn(p.src, pos)
	m := fmt.Sprintf(message, args...)
	msg := fmt.Sprintf("[%3d:%2d] %s", line, col, m)
	p.errors = append(p.errors, msg)
}

func (p *Parser) peekError(t token.TokenType) {
	if p.peekTokenIs(token.ILLEGAL) {
		p.addErrorAt(p.peekToken.Position, "%s", p.peekToken.Literal)
		return
	}
	p.addErrorAt(p.peekToken.Position, "expected next token to be %s, got %s instead", t, describe(p.peekToken))
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	if t.Type == token.ILLEGAL {
		p.addError("%s", t.Literal)
		return
	}
	p.addError("unexpected %s", describe(t))
}

func describe(t token.Token) string {
	switch t.Type {
	case token.NEWLINE:
		return "end of line"
	case token.INDENT:
		return "indent"
	case token.DEDENT:
		return "dedent"
	case token.EOF:
		return "end of file"
	}
	return fmt.Sprintf("'%s'", t.Literal)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	} else {
		p.peekError(t)
		return false
	}
}

func (p *Parser) Errors() []string {
	return p.errors
}

// ErrorDetails renders the first parse error with the offending source line.
func (p *Parser) ErrorDetails() string {
	if len(p.errors) == 0 {
		return ""
	}
	var line, col int
	fmt.Sscanf(strings.TrimSpace(p.errors[0]), "[%d:%d]", &line, &col)
	if line == 0 {
		return p.errors[0]
	}
	return p.errors[0] + "\n" + util.GetContextLines(p.src, line, col, "unexpected here")
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		errCount := len(p.errors)
		stmt := p.parseTopLevel()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > errCount {
			p.synchronize()
		}
		p.nextToken()
	}

	return program
}

// synchronize skips to the end of the current top-level construct after an
// error so that one mistake is not reported many times.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		if p.depth == 0 && !p.peekTokenIs(token.INDENT) &&
			(p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.DEDENT)) {
			return
		}
		p.nextToken()
	}
}

func (p *Parser) parseTopLevel() ast.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDefinition()
	case token.VAR, token.LET:
		return p.parseStatement()
	case token.ILLEGAL:
		p.addError("%s", p.curToken.Literal)
		return nil
	}
	if p.Interactive {
		return p.parseStatement()
	}
	p.addError("only function definitions and declarations are allowed at the top level, got %s", describe(p.curToken))
	return nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.LET:
		return p.endSimple(p.parseDeclaration())
	case token.ASSERT:
		return p.endSimple(p.parseAssertStatement())
	case token.RETURN:
		return p.endSimple(p.parseReturnStatement())
	case token.BREAK:
		return p.endSimple(&ast.BreakStatement{Token: p.curToken})
	case token.CONTINUE:
		return p.endSimple(&ast.ContinueStatement{Token: p.curToken})
	case token.PASS:
		return p.endSimple(&ast.PassStatement{Token: p.curToken})
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.MATCH:
		return p.parseMatchStatement()
	case token.DEF:
		p.addError("function definitions are only allowed at the top level")
		return nil
	default:
		return p.endSimple(p.parseExpressionOrAssignment())
	}
}

// endSimple consumes the NEWLINE that terminates a simple statement.
func (p *Parser) endSimple(stmt ast.Statement) ast.Statement {
	if stmt == nil {
		return nil
	}
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	return stmt
}

func (p *Parser) parseFunctionDefinition() ast.Statement {
	fd := &ast.FunctionDefinition{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fd.Name = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	fd.Parameters = params

	if !p.peekTokenIs(token.COLON) {
		p.nextToken()
		fd.ReturnType = p.parseType()
		if fd.ReturnType == nil {
			return nil
		}
		if fd.ReturnType.Name == "Void" {
			fd.ReturnType = nil
		}
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	fd.Body = p.parseBlock()
	if fd.Body == nil {
		return nil
	}
	return fd
}

func (p *Parser) parseParameters() ([]*ast.Parameter, bool) {
	params := []*ast.Parameter{}
	seen := map[string]bool{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := &ast.Parameter{Token: p.curToken, Name: p.curToken.Literal}
		if seen[param.Name] {
			p.addError("duplicate parameter '%s'", param.Name)
			return nil, false
		}
		seen[param.Name] = true

		p.nextToken()
		param.Type = p.parseType()
		if param.Type == nil {
			return nil, false
		}
		if param.Type.Name == "Void" {
			p.addError("parameter '%s' cannot have type Void", param.Name)
			return nil, false
		}

		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
			if param.Default == nil {
				return nil, false
			}
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil, false
		}
		return params, true
	}
}

// parseBlock expects curToken to be the ':' that opens the block and leaves
// curToken on the closing DEDENT.
func (p *Parser) parseBlock() *ast.Block {
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	if !p.expectPeek(token.INDENT) {
		return nil
	}
	block := &ast.Block{Token: p.curToken, Statements: []ast.Statement{}}
	p.nextToken()

	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	if !p.curTokenIs(token.DEDENT) {
		p.addError("unexpected end of file inside block")
		return nil
	}
	return block
}

func (p *Parser) parseDeclaration() ast.Statement {
	decl := &ast.DeclarationStatement{Token: p.curToken, Constant: p.curTokenIs(token.LET)}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	if !p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		decl.Type = p.parseType()
		if decl.Type == nil {
			return nil
		}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	decl.Value = p.parseExpression(LOWEST)
	if decl.Value == nil {
		return nil
	}
	return decl
}

func (p *Parser) parseAssertStatement() ast.Statement {
	stmt := &ast.AssertStatement{Token: p.curToken}
	p.nextToken()
	start := p.curToken.Position
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	end := tokenEnd(p.curToken)
	if end > len(p.src) {
		end = len(p.src)
	}
	if start <= end {
		stmt.Source = p.src[start:end]
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) {
		return stmt
	}
	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionOrAssignment() ast.Statement {
	first := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	switch {
	case p.peekTokenIs(token.ASSIGN):
		if !p.checkLValue(expr) {
			return nil
		}
		p.nextToken()
		stmt := &ast.AssignStatement{Token: p.curToken, Target: expr}
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
		return stmt
	case token.IsAssignOp(p.peekToken.Type):
		if !p.checkLValue(expr) {
			return nil
		}
		p.nextToken()
		stmt := &ast.CompoundAssignStatement{
			Token:    p.curToken,
			Operator: string(token.AssignOps[p.curToken.Type]),
			Target:   expr,
		}
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
		return stmt
	}

	return &ast.ExpressionStatement{Token: first, Expression: expr}
}

// checkLValue accepts a name or an index chain that ends in a name.
func (p *Parser) checkLValue(expr ast.Expression) bool {
	for {
		switch e := expr.(type) {
		case *ast.Identifier:
			return true
		case *ast.IndexExpression:
			expr = e.Left
		default:
			p.addErrorAt(ast.Pos(expr), "cannot assign to %s", expr.String())
			return false
		}
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Consequence = p.parseBlock()
	if stmt.Consequence == nil {
		return nil
	}

	for p.peekTokenIs(token.ELIF) {
		p.nextToken()
		clause := &ast.ElifClause{Token: p.curToken}
		p.nextToken()
		clause.Condition = p.parseExpression(LOWEST)
		if clause.Condition == nil || !p.expectPeek(token.COLON) {
			return nil
		}
		clause.Body = p.parseBlock()
		if clause.Body == nil {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, clause)
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return nil
		}
		stmt.Alternative = p.parseBlock()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Variable = p.curToken.Literal
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	if stmt.Iterable == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseMatchStatement() ast.Statement {
	stmt := &ast.MatchStatement{Token: p.curToken}

	p.nextToken()
	stmt.Subject = p.parseExpression(LOWEST)
	if stmt.Subject == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.NEWLINE) || !p.expectPeek(token.INDENT) {
		return nil
	}

	for p.peekTokenIs(token.CASE) {
		p.nextToken()
		mc := &ast.MatchCase{Token: p.curToken}
		p.nextToken()
		mc.Pattern = p.parsePattern()
		if mc.Pattern == nil || !p.expectPeek(token.COLON) {
			return nil
		}
		mc.Body = p.parseBlock()
		if mc.Body == nil {
			return nil
		}
		stmt.Cases = append(stmt.Cases, mc)
	}

	if len(stmt.Cases) == 0 {
		p.addErrorAt(p.peekToken.Position, "match requires at least one case")
		return nil
	}
	if !p.expectPeek(token.DEDENT) {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(token.NEWLINE) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as float", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseNotExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: "not"}

	p.nextToken()

	expression.Right = p.parseExpression(LOGICAL_NOT)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// parseRightAssociative handles ** and ::, which group to the right.
func (p *Parser) parseRightAssociative(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence - 1)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseNotInExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IN) {
		return nil
	}
	expression := &ast.InfixExpression{Token: tok, Operator: "not in", Left: left}

	p.nextToken()
	expression.Right = p.parseExpression(COMPARISON)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseConditionalExpression(consequence ast.Expression) ast.Expression {
	expression := &ast.ConditionalExpression{Token: p.curToken, Consequence: consequence}

	p.nextToken()
	expression.Condition = p.parseExpression(CONDITIONAL)
	if expression.Condition == nil || !p.expectPeek(token.ELSE) {
		return nil
	}

	p.nextToken()
	expression.Alternative = p.parseExpression(LOWEST)
	if expression.Alternative == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{}}
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return exp
	}

	elements := []ast.Expression{exp}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			break
		}
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		elements = append(elements, el)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.TupleLiteral{Token: tok, Elements: elements}
}

// parseBracketExpression covers list literals, ranges and comprehensions.
func (p *Parser) parseBracketExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: tok, Elements: []ast.Expression{}}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	switch {
	case p.peekTokenIs(token.RANGE):
		p.nextToken()
		p.nextToken()
		end := p.parseExpression(LOWEST)
		if end == nil || !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.RangeExpression{Token: tok, Start: first, End: end}

	case p.peekTokenIs(token.FOR):
		p.nextToken()
		comp := &ast.ListComprehension{Token: tok, Element: first}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		comp.Variable = p.curToken.Literal
		if !p.expectPeek(token.IN) {
			return nil
		}
		p.nextToken()
		// the filter's 'if' must not be read as a conditional expression
		comp.Iterable = p.parseExpression(CONDITIONAL)
		if comp.Iterable == nil {
			return nil
		}
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			comp.Condition = p.parseExpression(CONDITIONAL)
			if comp.Condition == nil {
				return nil
			}
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return comp
	}

	elements := []ast.Expression{first}
	rest := p.parseExpressionList(token.RBRACKET)
	if rest == nil {
		return nil
	}
	return &ast.ListLiteral{Token: tok, Elements: append(elements, rest...)}
}

// parseBraceExpression covers dict and set literals.
func (p *Parser) parseBraceExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.DictLiteral{Token: tok, Entries: []ast.DictEntry{}}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.COLON) {
		rest := p.parseExpressionList(token.RBRACE)
		if rest == nil {
			return nil
		}
		return &ast.SetLiteral{Token: tok, Elements: append([]ast.Expression{first}, rest...)}
	}

	dict := &ast.DictLiteral{Token: tok}
	key := first
	for {
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		dict.Entries = append(dict.Entries, ast.DictEntry{Key: key, Value: value})

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		key = p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return dict
}

// parseExpressionList reads `, e2, e3 end` after a first element has already
// been parsed. A trailing comma is allowed.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(end) {
			break
		}
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		list = append(list, el)
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	ident, ok := function.(*ast.Identifier)
	if !ok {
		p.addErrorAt(ast.Pos(function), "only named functions can be called, got %s", function.String())
		return nil
	}
	call := &ast.CallExpression{Token: p.curToken, Function: ident, Arguments: []*ast.Argument{}}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	for {
		p.nextToken()
		arg := &ast.Argument{Token: p.curToken}
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			arg.Name = p.curToken.Literal
			p.nextToken()
			p.nextToken()
		}
		arg.Value = p.parseExpression(LOWEST)
		if arg.Value == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			break
		}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken

	var start ast.Expression
	if !p.peekTokenIs(token.COLON) {
		p.nextToken()
		start = p.parseExpression(LOWEST)
		if start == nil {
			return nil
		}
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			return &ast.IndexExpression{Token: tok, Left: left, Index: start}
		}
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	slice := &ast.SliceExpression{Token: tok, Left: left, Start: start}
	if !p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		slice.End = p.parseExpression(LOWEST)
		if slice.End == nil {
			return nil
		}
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return slice
}
