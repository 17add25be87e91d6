package evaluator

import (
	"chai/internal/ast"
	"chai/internal/object"
)

func (e *Evaluator) execute(stmt ast.Statement) (Flow, error) {
	flow, err := e.executeNode(stmt)
	if err != nil {
		return normal, at(err, stmt)
	}
	return flow, nil
}

func (e *Evaluator) executeNode(stmt ast.Statement) (Flow, error) {
	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := e.evalNode(node.Expression)
		if err != nil {
			return normal, at(err, node.Expression)
		}
		return normal, nil

	case *ast.DeclarationStatement:
		return normal, e.execDeclaration(node)

	case *ast.AssignStatement:
		return normal, e.execAssign(node)

	case *ast.CompoundAssignStatement:
		return normal, e.execCompoundAssign(node)

	case *ast.AssertStatement:
		cond, err := e.evalCondition(node.Condition)
		if err != nil {
			return normal, err
		}
		if !cond {
			return Flow{Kind: FlowAssert, Source: node.Source, Pos: ast.Pos(node)}, nil
		}
		return normal, nil

	case *ast.ReturnStatement:
		flow := Flow{Kind: FlowReturn, Pos: ast.Pos(node)}
		if node.ReturnValue != nil {
			val, err := e.eval(node.ReturnValue)
			if err != nil {
				return normal, err
			}
			flow.Value = val
		}
		return flow, nil

	case *ast.BreakStatement:
		return Flow{Kind: FlowBreak, Pos: ast.Pos(node)}, nil

	case *ast.ContinueStatement:
		return Flow{Kind: FlowContinue, Pos: ast.Pos(node)}, nil

	case *ast.PassStatement:
		return normal, nil

	case *ast.IfStatement:
		return e.execIf(node)

	case *ast.WhileStatement:
		return e.execWhile(node)

	case *ast.ForStatement:
		return e.execFor(node)

	case *ast.MatchStatement:
		return e.execMatch(node)

	case *ast.FunctionDefinition:
		return normal, object.NewError(object.DeclarationError, "function '%s' must be defined at the top level", node.Name)
	}

	return normal, object.NewError(object.TypeMismatch, "cannot execute %T", stmt)
}

// execBlock runs a statement sequence. Blocks do not open a scope: names
// declared inside live until their frame is popped.
func (e *Evaluator) execBlock(block *ast.Block) (Flow, error) {
	for _, stmt := range block.Statements {
		flow, err := e.execute(stmt)
		if err != nil || flow.Kind != FlowNormal {
			return flow, err
		}
	}
	return normal, nil
}

func (e *Evaluator) execDeclaration(node *ast.DeclarationStatement) error {
	val, err := e.eval(node.Value)
	if err != nil {
		return err
	}

	if node.Type != nil {
		declared := object.FromTypeExpr(node.Type)
		if actual := object.TypeOf(val); !declared.Equals(actual) {
			return object.NewError(object.TypeMismatch, "cannot initialise '%s' of type %s with a value of type %s",
				node.Name, declared, actual)
		}
	}

	// A loop body running the same declaration again rebinds the name.
	owners := e.declarations[len(e.declarations)-1]
	if owners[node.Name] == node && e.Env.ExistsLocal(node.Name) {
		e.Env.Remove(node.Name)
	}

	if err := e.Env.Declare(node.Name, val, node.Constant); err != nil {
		return err
	}
	owners[node.Name] = node
	return nil
}

func (e *Evaluator) evalCondition(expr ast.Expression) (bool, error) {
	val, err := e.eval(expr)
	if err != nil {
		return false, err
	}
	b, err := object.ToBool(val)
	if err != nil {
		return false, at(err, expr)
	}
	return b, nil
}

func (e *Evaluator) execIf(node *ast.IfStatement) (Flow, error) {
	cond, err := e.evalCondition(node.Condition)
	if err != nil {
		return normal, err
	}
	if cond {
		return e.execBlock(node.Consequence)
	}

	for _, elif := range node.Elifs {
		cond, err := e.evalCondition(elif.Condition)
		if err != nil {
			return normal, err
		}
		if cond {
			return e.execBlock(elif.Body)
		}
	}

	if node.Alternative != nil {
		return e.execBlock(node.Alternative)
	}
	return normal, nil
}

func (e *Evaluator) execWhile(node *ast.WhileStatement) (Flow, error) {
	for {
		cond, err := e.evalCondition(node.Condition)
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}

		flow, err := e.execBlock(node.Body)
		if err != nil {
			return normal, err
		}
		switch flow.Kind {
		case FlowBreak:
			return normal, nil
		case FlowReturn, FlowAssert:
			return flow, nil
		}
	}
}

func (e *Evaluator) execFor(node *ast.ForStatement) (Flow, error) {
	if e.Env.Exists(node.Variable) {
		return normal, object.NewError(object.DeclarationError, "loop variable '%s' is already declared", node.Variable)
	}

	iterable, err := e.eval(node.Iterable)
	if err != nil {
		return normal, err
	}
	cursor, err := object.NewCursor(iterable)
	if err != nil {
		return normal, at(err, node.Iterable)
	}

	defer e.Env.Remove(node.Variable)

	for !cursor.Done() {
		if err := e.Env.Store(node.Variable, cursor.Next(), false); err != nil {
			return normal, err
		}

		flow, err := e.execBlock(node.Body)
		if err != nil {
			return normal, err
		}
		switch flow.Kind {
		case FlowBreak:
			return normal, nil
		case FlowReturn, FlowAssert:
			return flow, nil
		}
	}
	return normal, nil
}
