package evaluator

import (
	"chai/internal/ast"
	"chai/internal/object"
)

// eval evaluates an expression that must produce a value.
func (e *Evaluator) eval(expr ast.Expression) (object.Value, error) {
	val, err := e.evalNode(expr)
	if err != nil {
		return nil, at(err, expr)
	}
	if val == nil {
		return nil, object.NewError(object.TypeMismatch, "%s does not produce a value", expr.String()).At(ast.Pos(expr))
	}
	return val, nil
}

// evalNode evaluates expr. A call to a function without a result yields a nil
// value and no error.
func (e *Evaluator) evalNode(expr ast.Expression) (object.Value, error) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}, nil

	case *ast.FloatLiteral:
		return &object.Float{Value: node.Value}, nil

	case *ast.StringLiteral:
		return object.NewString(node.Value), nil

	case *ast.BooleanLiteral:
		return object.NativeBool(node.Value), nil

	case *ast.Identifier:
		return e.evalIdentifier(node)

	case *ast.PrefixExpression:
		right, err := e.eval(node.Right)
		if err != nil {
			return nil, err
		}
		return object.UnaryOp(node.Operator, right)

	case *ast.InfixExpression:
		if node.Operator == "and" || node.Operator == "or" {
			return e.evalLogical(node)
		}
		left, err := e.eval(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(node.Right)
		if err != nil {
			return nil, err
		}
		return object.BinaryOp(node.Operator, left, right)

	case *ast.ConditionalExpression:
		cond, err := e.evalCondition(node.Condition)
		if err != nil {
			return nil, err
		}
		if cond {
			return e.eval(node.Consequence)
		}
		return e.eval(node.Alternative)

	case *ast.CallExpression:
		return e.evalCall(node)

	case *ast.IndexExpression:
		left, err := e.eval(node.Left)
		if err != nil {
			return nil, err
		}
		index, err := e.eval(node.Index)
		if err != nil {
			return nil, err
		}
		return object.Index(left, index)

	case *ast.SliceExpression:
		return e.evalSlice(node)

	case *ast.ListLiteral:
		elements, err := e.evalExpressions(node.Elements)
		if err != nil {
			return nil, err
		}
		return &object.List{Elements: elements}, nil

	case *ast.TupleLiteral:
		elements, err := e.evalExpressions(node.Elements)
		if err != nil {
			return nil, err
		}
		return &object.Tuple{Elements: elements}, nil

	case *ast.SetLiteral:
		elements, err := e.evalExpressions(node.Elements)
		if err != nil {
			return nil, err
		}
		set := object.NewSet()
		for _, el := range elements {
			set.Add(el)
		}
		return set, nil

	case *ast.DictLiteral:
		return e.evalDictLiteral(node)

	case *ast.RangeExpression:
		start, err := e.eval(node.Start)
		if err != nil {
			return nil, err
		}
		end, err := e.eval(node.End)
		if err != nil {
			return nil, err
		}
		return object.Range(start, end)

	case *ast.ListComprehension:
		return e.evalComprehension(node)
	}

	return nil, object.NewError(object.TypeMismatch, "cannot evaluate %T", expr)
}

// evalIdentifier looks name up among variables first and then among the
// defined functions.
func (e *Evaluator) evalIdentifier(node *ast.Identifier) (object.Value, error) {
	if b, ok := e.Env.GetBinding(node.Value); ok {
		return b.Value, nil
	}
	if fn, ok := e.functions[node.Value]; ok {
		return fn, nil
	}
	return e.Env.Load(node.Value)
}

// evalLogical short-circuits: the right operand is evaluated only when the
// left one does not decide the result.
func (e *Evaluator) evalLogical(node *ast.InfixExpression) (object.Value, error) {
	left, err := e.evalCondition(node.Left)
	if err != nil {
		return nil, err
	}
	if node.Operator == "or" && left {
		return object.TRUE, nil
	}
	if node.Operator == "and" && !left {
		return object.FALSE, nil
	}

	right, err := e.evalCondition(node.Right)
	if err != nil {
		return nil, err
	}
	return object.NativeBool(right), nil
}

func (e *Evaluator) evalExpressions(exprs []ast.Expression) ([]object.Value, error) {
	result := make([]object.Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := e.eval(expr)
		if err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, nil
}

func (e *Evaluator) evalSlice(node *ast.SliceExpression) (object.Value, error) {
	left, err := e.eval(node.Left)
	if err != nil {
		return nil, err
	}

	var start, end object.Value
	if node.Start != nil {
		if start, err = e.eval(node.Start); err != nil {
			return nil, err
		}
	}
	if node.End != nil {
		if end, err = e.eval(node.End); err != nil {
			return nil, err
		}
	}
	return object.Slice(left, start, end)
}

func (e *Evaluator) evalDictLiteral(node *ast.DictLiteral) (object.Value, error) {
	dict := object.NewDict()
	for _, entry := range node.Entries {
		key, err := e.eval(entry.Key)
		if err != nil {
			return nil, err
		}
		val, err := e.eval(entry.Value)
		if err != nil {
			return nil, err
		}
		dict.Put(key, val)
	}
	return dict, nil
}

// evalComprehension binds the variable for one element at a time; it must
// not already be visible.
func (e *Evaluator) evalComprehension(node *ast.ListComprehension) (object.Value, error) {
	if e.Env.Exists(node.Variable) {
		return nil, object.NewError(object.DeclarationError, "comprehension variable '%s' is already declared", node.Variable)
	}

	iterable, err := e.eval(node.Iterable)
	if err != nil {
		return nil, err
	}
	cursor, err := object.NewCursor(iterable)
	if err != nil {
		return nil, at(err, node.Iterable)
	}

	defer e.Env.Remove(node.Variable)

	result := &object.List{Elements: []object.Value{}}
	for !cursor.Done() {
		if err := e.Env.Store(node.Variable, cursor.Next(), false); err != nil {
			return nil, err
		}

		if node.Condition != nil {
			keep, err := e.evalCondition(node.Condition)
			if err != nil {
				return nil, err
			}
			if !keep {
				e.Env.Remove(node.Variable)
				continue
			}
		}

		val, err := e.eval(node.Element)
		if err != nil {
			return nil, err
		}
		result.Elements = append(result.Elements, val)
		e.Env.Remove(node.Variable)
	}
	return result, nil
}
