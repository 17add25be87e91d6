package ast

import (
	"chai/internal/token"
	"strings"
)

// Pattern is the left-hand side of a match case.
type Pattern interface {
	Node
	patternNode()
}

// LiteralPattern matches a value structurally equal to Value.
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (lp *LiteralPattern) patternNode()         {}
func (lp *LiteralPattern) TokenLiteral() string { return lp.Token.Literal }
func (lp *LiteralPattern) position() int        { return lp.Token.Position }
func (lp *LiteralPattern) String() string       { return lp.Value.String() }

// BindingPattern matches anything and binds it to Name.
type BindingPattern struct {
	Token token.Token
	Name  string
}

func (bp *BindingPattern) patternNode()         {}
func (bp *BindingPattern) TokenLiteral() string { return bp.Token.Literal }
func (bp *BindingPattern) position() int        { return bp.Token.Position }
func (bp *BindingPattern) String() string       { return bp.Name }

type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode()         {}
func (wp *WildcardPattern) TokenLiteral() string { return wp.Token.Literal }
func (wp *WildcardPattern) position() int        { return wp.Token.Position }
func (wp *WildcardPattern) String() string       { return "_" }

type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()         {}
func (tp *TuplePattern) TokenLiteral() string { return tp.Token.Literal }
func (tp *TuplePattern) position() int        { return tp.Token.Position }
func (tp *TuplePattern) String() string       { return "(" + joinPatterns(tp.Elements, ", ") + ")" }

type ListPattern struct {
	Token    token.Token
	Elements []Pattern
}

func (lp *ListPattern) patternNode()         {}
func (lp *ListPattern) TokenLiteral() string { return lp.Token.Literal }
func (lp *ListPattern) position() int        { return lp.Token.Position }
func (lp *ListPattern) String() string       { return "[" + joinPatterns(lp.Elements, ", ") + "]" }

// ConsPattern is `h1 :: h2 :: tail`: each head matches one leading element and
// Tail matches the remaining elements as a list.
type ConsPattern struct {
	Token token.Token
	Heads []Pattern
	Tail  Pattern
}

func (cp *ConsPattern) patternNode()         {}
func (cp *ConsPattern) TokenLiteral() string { return cp.Token.Literal }
func (cp *ConsPattern) position() int        { return cp.Token.Position }
func (cp *ConsPattern) String() string {
	return joinPatterns(append(append([]Pattern{}, cp.Heads...), cp.Tail), " :: ")
}

func joinPatterns(patterns []Pattern, sep string) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}
