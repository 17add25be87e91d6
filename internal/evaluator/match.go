package evaluator

import (
	"chai/internal/ast"
	"chai/internal/object"
)

// execMatch runs the body of the first case whose pattern matches. Names a
// pattern binds live only for that case.
func (e *Evaluator) execMatch(node *ast.MatchStatement) (Flow, error) {
	subject, err := e.eval(node.Subject)
	if err != nil {
		return normal, err
	}

	for _, c := range node.Cases {
		var bound []string
		matched, err := e.matchPattern(c.Pattern, subject, &bound)
		if err != nil || !matched {
			e.unbind(bound)
			if err != nil {
				return normal, at(err, c.Pattern)
			}
			continue
		}

		flow, err := e.execBlock(c.Body)
		e.unbind(bound)
		return flow, err
	}
	return normal, nil
}

func (e *Evaluator) unbind(names []string) {
	for _, name := range names {
		e.Env.Remove(name)
	}
}

func (e *Evaluator) matchPattern(pattern ast.Pattern, val object.Value, bound *[]string) (bool, error) {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return true, nil

	case *ast.BindingPattern:
		if err := e.Env.Declare(p.Name, val, false); err != nil {
			return false, err
		}
		*bound = append(*bound, p.Name)
		return true, nil

	case *ast.LiteralPattern:
		lit, err := e.eval(p.Value)
		if err != nil {
			return false, err
		}
		return object.Equal(lit, val), nil

	case *ast.TuplePattern:
		tuple, ok := val.(*object.Tuple)
		if !ok || len(tuple.Elements) != len(p.Elements) {
			return false, nil
		}
		return e.matchAll(p.Elements, tuple.Elements, bound)

	case *ast.ListPattern:
		list, ok := val.(*object.List)
		if !ok || len(list.Elements) != len(p.Elements) {
			return false, nil
		}
		return e.matchAll(p.Elements, list.Elements, bound)

	case *ast.ConsPattern:
		list, ok := val.(*object.List)
		if !ok || len(list.Elements) < len(p.Heads) {
			return false, nil
		}
		matched, err := e.matchAll(p.Heads, list.Elements[:len(p.Heads)], bound)
		if err != nil || !matched {
			return false, err
		}
		rest := append([]object.Value{}, list.Elements[len(p.Heads):]...)
		return e.matchPattern(p.Tail, &object.List{Elements: rest}, bound)
	}

	return false, object.NewError(object.TypeMismatch, "unsupported pattern %s", pattern.String())
}

func (e *Evaluator) matchAll(patterns []ast.Pattern, values []object.Value, bound *[]string) (bool, error) {
	for i, p := range patterns {
		matched, err := e.matchPattern(p, values[i], bound)
		if err != nil || !matched {
			return false, err
		}
	}
	return true, nil
}
