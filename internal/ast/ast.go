package ast

import (
	"bytes"
	"chai/internal/token"
	"strings"
)

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Pos returns the source offset of the token that starts n.
func Pos(n Node) int {
	type positioned interface{ position() int }
	if p, ok := n.(positioned); ok {
		return p.position()
	}
	return 0
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	} else {
		return ""
	}
}

func (p *Program) String() string {
	var out bytes.Buffer

	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}

	return out.String()
}

// TypeExpr is a written type annotation, e.g. `[Int]` or `Int -> Bool`.
// Name is one of Int, Float, Bool, String, Void, List, Set, Dict, Tuple, Function.
// For Function, Subs holds the return type first and then the parameter types.
type TypeExpr struct {
	Token token.Token
	Name  string
	Subs  []*TypeExpr
}

func (te *TypeExpr) TokenLiteral() string { return te.Token.Literal }
func (te *TypeExpr) position() int        { return te.Token.Position }
func (te *TypeExpr) String() string {
	parts := func(subs []*TypeExpr) []string {
		out := make([]string, len(subs))
		for i, s := range subs {
			out[i] = s.String()
		}
		return out
	}
	switch te.Name {
	case "List":
		return "[" + te.Subs[0].String() + "]"
	case "Set":
		return "{" + te.Subs[0].String() + "}"
	case "Dict":
		return "{" + te.Subs[0].String() + ": " + te.Subs[1].String() + "}"
	case "Tuple":
		return "(" + strings.Join(parts(te.Subs), ", ") + ")"
	case "Function":
		params := parts(te.Subs[1:])
		if len(params) == 0 {
			params = []string{"()"}
		}
		return strings.Join(append(params, te.Subs[0].String()), " -> ")
	}
	return te.Name
}

type Parameter struct {
	Token   token.Token // the parameter name token
	Name    string
	Type    *TypeExpr
	Default Expression // nil when the parameter has no default
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) position() int        { return p.Token.Position }
func (p *Parameter) String() string {
	var out bytes.Buffer
	out.WriteString(p.Name)
	if p.Type != nil {
		out.WriteString(" " + p.Type.String())
	}
	if p.Default != nil {
		out.WriteString(" = " + p.Default.String())
	}
	return out.String()
}

type FunctionDefinition struct {
	Token      token.Token // the 'def' token
	Name       string
	Parameters []*Parameter
	ReturnType *TypeExpr // nil for Void
	Body       *Block
}

func (fd *FunctionDefinition) statementNode()       {}
func (fd *FunctionDefinition) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDefinition) position() int        { return fd.Token.Position }
func (fd *FunctionDefinition) String() string {
	var out bytes.Buffer

	params := []string{}
	for _, p := range fd.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("def ")
	out.WriteString(fd.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if fd.ReturnType != nil {
		out.WriteString(" " + fd.ReturnType.String())
	}
	out.WriteString(":")
	out.WriteString(fd.Body.String())

	return out.String()
}

type Block struct {
	Token      token.Token // the INDENT token
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) position() int        { return b.Token.Position }
func (b *Block) String() string {
	var out bytes.Buffer

	out.WriteString(" { ")
	for i, s := range b.Statements {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(s.String())
	}
	out.WriteString(" }")

	return out.String()
}

type DeclarationStatement struct {
	Token    token.Token // the 'var' or 'let' token
	Name     string
	Type     *TypeExpr // optional annotation
	Value    Expression
	Constant bool
}

func (ds *DeclarationStatement) statementNode()       {}
func (ds *DeclarationStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DeclarationStatement) position() int        { return ds.Token.Position }
func (ds *DeclarationStatement) String() string {
	var out bytes.Buffer

	out.WriteString(ds.TokenLiteral() + " ")
	out.WriteString(ds.Name)
	if ds.Type != nil {
		out.WriteString(" " + ds.Type.String())
	}
	out.WriteString(" = ")
	if ds.Value != nil {
		out.WriteString(ds.Value.String())
	}

	return out.String()
}

// AssignStatement writes into an lvalue: an *Identifier or an *IndexExpression
// chain that ends in one.
type AssignStatement struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) position() int        { return as.Token.Position }
func (as *AssignStatement) String() string {
	return as.Target.String() + " = " + as.Value.String()
}

type CompoundAssignStatement struct {
	Token    token.Token // the operator token, e.g. '+='
	Operator string      // the binary operator applied, e.g. '+'
	Target   Expression
	Value    Expression
}

func (cs *CompoundAssignStatement) statementNode()       {}
func (cs *CompoundAssignStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CompoundAssignStatement) position() int        { return cs.Token.Position }
func (cs *CompoundAssignStatement) String() string {
	return cs.Target.String() + " " + cs.Token.Literal + " " + cs.Value.String()
}

type AssertStatement struct {
	Token     token.Token // the 'assert' token
	Condition Expression
	Source    string // the condition exactly as written
}

func (as *AssertStatement) statementNode()       {}
func (as *AssertStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssertStatement) position() int        { return as.Token.Position }
func (as *AssertStatement) String() string       { return "assert " + as.Condition.String() }

type ReturnStatement struct {
	Token       token.Token // the 'return' token
	ReturnValue Expression  // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) position() int        { return rs.Token.Position }
func (rs *ReturnStatement) String() string {
	if rs.ReturnValue == nil {
		return "return"
	}
	return "return " + rs.ReturnValue.String()
}

type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) position() int        { return bs.Token.Position }
func (bs *BreakStatement) String() string       { return "break" }

type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) position() int        { return cs.Token.Position }
func (cs *ContinueStatement) String() string       { return "continue" }

type PassStatement struct {
	Token token.Token
}

func (ps *PassStatement) statementNode()       {}
func (ps *PassStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PassStatement) position() int        { return ps.Token.Position }
func (ps *PassStatement) String() string       { return "pass" }

type ElifClause struct {
	Token     token.Token // the 'elif' token
	Condition Expression
	Body      *Block
}

type IfStatement struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence *Block
	Elifs       []*ElifClause
	Alternative *Block // nil without an else
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) position() int        { return is.Token.Position }
func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("if " + is.Condition.String() + ":")
	out.WriteString(is.Consequence.String())
	for _, e := range is.Elifs {
		out.WriteString(" elif " + e.Condition.String() + ":")
		out.WriteString(e.Body.String())
	}
	if is.Alternative != nil {
		out.WriteString(" else:")
		out.WriteString(is.Alternative.String())
	}

	return out.String()
}

type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *Block
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) position() int        { return ws.Token.Position }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + ":" + ws.Body.String()
}

type ForStatement struct {
	Token    token.Token // the 'for' token
	Variable string
	Iterable Expression
	Body     *Block
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) position() int        { return fs.Token.Position }
func (fs *ForStatement) String() string {
	return "for " + fs.Variable + " in " + fs.Iterable.String() + ":" + fs.Body.String()
}

type MatchCase struct {
	Token   token.Token // the 'case' token
	Pattern Pattern
	Body    *Block
}

func (mc *MatchCase) String() string {
	return "case " + mc.Pattern.String() + ":" + mc.Body.String()
}

type MatchStatement struct {
	Token   token.Token // the 'match' token
	Subject Expression
	Cases   []*MatchCase
}

func (ms *MatchStatement) statementNode()       {}
func (ms *MatchStatement) TokenLiteral() string { return ms.Token.Literal }
func (ms *MatchStatement) position() int        { return ms.Token.Position }
func (ms *MatchStatement) String() string {
	var out bytes.Buffer

	out.WriteString("match " + ms.Subject.String() + ":")
	for _, c := range ms.Cases {
		out.WriteString(" " + c.String())
	}

	return out.String()
}

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) position() int        { return es.Token.Position }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}
