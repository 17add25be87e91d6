package ast

import (
	"bytes"
	"chai/internal/token"
	"strings"
)

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) position() int        { return i.Token.Position }
func (i *Identifier) String() string       { return i.Value }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) position() int        { return il.Token.Position }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) position() int        { return fl.Token.Position }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// StringLiteral keeps the text between the quotes undecoded.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) position() int        { return sl.Token.Position }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) position() int        { return b.Token.Position }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

type PrefixExpression struct {
	Token    token.Token // The prefix token, e.g. - or not
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) position() int        { return pe.Token.Position }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(pe.Operator)
	if pe.Operator == "not" {
		out.WriteString(" ")
	}
	out.WriteString(pe.Right.String())
	out.WriteString(")")

	return out.String()
}

type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) position() int        { return ie.Token.Position }
func (ie *InfixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	out.WriteString(")")

	return out.String()
}

// ConditionalExpression is `Consequence if Condition else Alternative`.
type ConditionalExpression struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ce *ConditionalExpression) expressionNode()      {}
func (ce *ConditionalExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *ConditionalExpression) position() int        { return ce.Token.Position }
func (ce *ConditionalExpression) String() string {
	return "(" + ce.Consequence.String() + " if " + ce.Condition.String() + " else " + ce.Alternative.String() + ")"
}

// Argument is one call argument; Name is empty for positional arguments.
type Argument struct {
	Token token.Token
	Name  string
	Value Expression
}

func (a *Argument) String() string {
	if a.Name == "" {
		return a.Value.String()
	}
	return a.Name + "=" + a.Value.String()
}

type CallExpression struct {
	Token     token.Token // The '(' token
	Function  *Identifier
	Arguments []*Argument
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) position() int        { return ce.Function.Token.Position }
func (ce *CallExpression) String() string {
	var out bytes.Buffer

	args := []string{}
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}

	out.WriteString(ce.Function.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")

	return out.String()
}

type IndexExpression struct {
	Token token.Token // The [ token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) position() int        { return ie.Token.Position }
func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + ie.Index.String() + "]"
}

type SliceExpression struct {
	Token token.Token // The [ token
	Left  Expression
	Start Expression // nil means from the beginning
	End   Expression // nil means to the end
}

func (se *SliceExpression) expressionNode()      {}
func (se *SliceExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SliceExpression) position() int        { return se.Token.Position }
func (se *SliceExpression) String() string {
	var out bytes.Buffer

	out.WriteString(se.Left.String())
	out.WriteString("[")
	if se.Start != nil {
		out.WriteString(se.Start.String())
	}
	out.WriteString(":")
	if se.End != nil {
		out.WriteString(se.End.String())
	}
	out.WriteString("]")

	return out.String()
}

type ListLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) position() int        { return ll.Token.Position }
func (ll *ListLiteral) String() string       { return "[" + joinExpressions(ll.Elements) + "]" }

type TupleLiteral struct {
	Token    token.Token // the '(' token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Literal }
func (tl *TupleLiteral) position() int        { return tl.Token.Position }
func (tl *TupleLiteral) String() string       { return "(" + joinExpressions(tl.Elements) + ")" }

type SetLiteral struct {
	Token    token.Token // the '{' token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()      {}
func (sl *SetLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *SetLiteral) position() int        { return sl.Token.Position }
func (sl *SetLiteral) String() string       { return "{" + joinExpressions(sl.Elements) + "}" }

type DictEntry struct {
	Key   Expression
	Value Expression
}

type DictLiteral struct {
	Token   token.Token // the '{' token
	Entries []DictEntry
}

func (dl *DictLiteral) expressionNode()      {}
func (dl *DictLiteral) TokenLiteral() string { return dl.Token.Literal }
func (dl *DictLiteral) position() int        { return dl.Token.Position }
func (dl *DictLiteral) String() string {
	pairs := []string{}
	for _, e := range dl.Entries {
		pairs = append(pairs, e.Key.String()+": "+e.Value.String())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// RangeExpression is the inclusive list range `[Start .. End]`.
type RangeExpression struct {
	Token token.Token // the '[' token
	Start Expression
	End   Expression
}

func (re *RangeExpression) expressionNode()      {}
func (re *RangeExpression) TokenLiteral() string { return re.Token.Literal }
func (re *RangeExpression) position() int        { return re.Token.Position }
func (re *RangeExpression) String() string {
	return "[" + re.Start.String() + " .. " + re.End.String() + "]"
}

// ListComprehension is `[Element for Variable in Iterable if Condition]`.
type ListComprehension struct {
	Token     token.Token // the '[' token
	Element   Expression
	Variable  string
	Iterable  Expression
	Condition Expression // nil without a filter
}

func (lc *ListComprehension) expressionNode()      {}
func (lc *ListComprehension) TokenLiteral() string { return lc.Token.Literal }
func (lc *ListComprehension) position() int        { return lc.Token.Position }
func (lc *ListComprehension) String() string {
	var out bytes.Buffer

	out.WriteString("[")
	out.WriteString(lc.Element.String())
	out.WriteString(" for " + lc.Variable + " in ")
	out.WriteString(lc.Iterable.String())
	if lc.Condition != nil {
		out.WriteString(" if " + lc.Condition.String())
	}
	out.WriteString("]")

	return out.String()
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
