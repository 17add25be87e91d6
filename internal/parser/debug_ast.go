package parser

import (
	"chai/internal/ast"
	"encoding/json"
	"fmt"
	"os"
)

type node = map[string]interface{}

// WalkAST turns a program tree into nested maps for JSON output. Keys carry a
// numeric prefix so that encoding/json, which sorts map keys, keeps them in a
// readable order.
func WalkAST(n ast.Node) interface{} {
	switch n := n.(type) {
	case nil:
		return nil

	case *ast.Program:
		return node{"0.type": "Program", "1.statements": walkStatements(n.Statements)}

	case *ast.FunctionDefinition:
		params := make([]interface{}, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = node{
				"0.name":    p.Name,
				"1.type":    typeString(p.Type),
				"2.default": walkExpression(p.Default),
			}
		}
		return node{
			"0.type":       "FunctionDefinition",
			"1.position":   n.Token.Position,
			"2.name":       n.Name,
			"3.parameters": params,
			"4.returns":    typeString(n.ReturnType),
			"5.body":       WalkAST(n.Body),
		}

	case *ast.Block:
		if n == nil {
			return nil
		}
		return node{"0.type": "Block", "1.position": n.Token.Position, "2.statements": walkStatements(n.Statements)}

	case *ast.DeclarationStatement:
		return node{
			"0.type":     "DeclarationStatement",
			"1.position": n.Token.Position,
			"2.name":     n.Name,
			"3.constant": n.Constant,
			"4.declared": typeString(n.Type),
			"5.value":    WalkAST(n.Value),
		}

	case *ast.AssignStatement:
		return node{"0.type": "AssignStatement", "1.position": n.Token.Position, "2.target": WalkAST(n.Target), "3.value": WalkAST(n.Value)}

	case *ast.CompoundAssignStatement:
		return node{
			"0.type":     "CompoundAssignStatement",
			"1.position": n.Token.Position,
			"2.operator": n.Operator,
			"3.target":   WalkAST(n.Target),
			"4.value":    WalkAST(n.Value),
		}

	case *ast.AssertStatement:
		return node{"0.type": "AssertStatement", "1.position": n.Token.Position, "2.source": n.Source, "3.condition": WalkAST(n.Condition)}

	case *ast.ReturnStatement:
		return node{"0.type": "ReturnStatement", "1.position": n.Token.Position, "2.value": walkExpression(n.ReturnValue)}

	case *ast.BreakStatement, *ast.ContinueStatement, *ast.PassStatement:
		return node{"0.type": fmt.Sprintf("%T", n)[5:], "1.position": ast.Pos(n)}

	case *ast.IfStatement:
		elifs := make([]interface{}, len(n.Elifs))
		for i, e := range n.Elifs {
			elifs[i] = node{"0.condition": WalkAST(e.Condition), "1.body": WalkAST(e.Body)}
		}
		return node{
			"0.type":        "IfStatement",
			"1.position":    n.Token.Position,
			"2.condition":   WalkAST(n.Condition),
			"3.consequence": WalkAST(n.Consequence),
			"4.elifs":       elifs,
			"5.alternative": WalkAST(n.Alternative),
		}

	case *ast.WhileStatement:
		return node{"0.type": "WhileStatement", "1.position": n.Token.Position, "2.condition": WalkAST(n.Condition), "3.body": WalkAST(n.Body)}

	case *ast.ForStatement:
		return node{
			"0.type":     "ForStatement",
			"1.position": n.Token.Position,
			"2.variable": n.Variable,
			"3.iterable": WalkAST(n.Iterable),
			"4.body":     WalkAST(n.Body),
		}

	case *ast.MatchStatement:
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = node{"0.pattern": c.Pattern.String(), "1.body": WalkAST(c.Body)}
		}
		return node{"0.type": "MatchStatement", "1.position": n.Token.Position, "2.subject": WalkAST(n.Subject), "3.cases": cases}

	case *ast.ExpressionStatement:
		return node{"0.type": "ExpressionStatement", "1.position": n.Token.Position, "2.expression": WalkAST(n.Expression)}

	case *ast.Identifier:
		return node{"0.type": "Identifier", "1.position": n.Token.Position, "2.value": n.Value}

	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral, *ast.BooleanLiteral:
		return node{"0.type": fmt.Sprintf("%T", n)[5:], "1.position": ast.Pos(n), "2.literal": n.TokenLiteral()}

	case *ast.PrefixExpression:
		return node{"0.type": "PrefixExpression", "1.position": n.Token.Position, "2.operator": n.Operator, "3.right": WalkAST(n.Right)}

	case *ast.InfixExpression:
		return node{
			"0.type":     "InfixExpression",
			"1.position": n.Token.Position,
			"2.operator": n.Operator,
			"3.left":     WalkAST(n.Left),
			"4.right":    WalkAST(n.Right),
		}

	case *ast.ConditionalExpression:
		return node{
			"0.type":        "ConditionalExpression",
			"1.position":    n.Token.Position,
			"2.condition":   WalkAST(n.Condition),
			"3.consequence": WalkAST(n.Consequence),
			"4.alternative": WalkAST(n.Alternative),
		}

	case *ast.CallExpression:
		args := make([]interface{}, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = node{"0.name": a.Name, "1.value": WalkAST(a.Value)}
		}
		return node{"0.type": "CallExpression", "1.position": ast.Pos(n), "2.function": n.Function.Value, "3.arguments": args}

	case *ast.IndexExpression:
		return node{"0.type": "IndexExpression", "1.position": n.Token.Position, "2.left": WalkAST(n.Left), "3.index": WalkAST(n.Index)}

	case *ast.SliceExpression:
		return node{
			"0.type":     "SliceExpression",
			"1.position": n.Token.Position,
			"2.left":     WalkAST(n.Left),
			"3.start":    walkExpression(n.Start),
			"4.end":      walkExpression(n.End),
		}

	case *ast.ListLiteral:
		return node{"0.type": "ListLiteral", "1.position": n.Token.Position, "2.elements": walkExpressions(n.Elements)}

	case *ast.TupleLiteral:
		return node{"0.type": "TupleLiteral", "1.position": n.Token.Position, "2.elements": walkExpressions(n.Elements)}

	case *ast.SetLiteral:
		return node{"0.type": "SetLiteral", "1.position": n.Token.Position, "2.elements": walkExpressions(n.Elements)}

	case *ast.DictLiteral:
		entries := make([]interface{}, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = node{"0.key": WalkAST(e.Key), "1.value": WalkAST(e.Value)}
		}
		return node{"0.type": "DictLiteral", "1.position": n.Token.Position, "2.entries": entries}

	case *ast.RangeExpression:
		return node{"0.type": "RangeExpression", "1.position": n.Token.Position, "2.start": WalkAST(n.Start), "3.end": WalkAST(n.End)}

	case *ast.ListComprehension:
		return node{
			"0.type":      "ListComprehension",
			"1.position":  n.Token.Position,
			"2.element":   WalkAST(n.Element),
			"3.variable":  n.Variable,
			"4.iterable":  WalkAST(n.Iterable),
			"5.condition": walkExpression(n.Condition),
		}
	}

	return node{"0.type": "Unknown: " + n.String()}
}

func walkStatements(stmts []ast.Statement) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = WalkAST(s)
	}
	return out
}

func walkExpressions(exprs []ast.Expression) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = WalkAST(e)
	}
	return out
}

// walkExpression maps an absent optional expression to null.
func walkExpression(e ast.Expression) interface{} {
	if e == nil {
		return nil
	}
	return WalkAST(e)
}

func typeString(te *ast.TypeExpr) string {
	if te == nil {
		return "Void"
	}
	return te.String()
}

// WriteASTToJSON writes the tree under n to filename as indented JSON.
func WriteASTToJSON(n ast.Node, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(WalkAST(n)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
