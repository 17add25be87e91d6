package evaluator

import (
	"chai/internal/ast"
	"chai/internal/object"
)

type boundArgument struct {
	name  string
	value object.Value
}

type callArgument struct {
	name  string // empty for a positional argument
	value object.Value
}

// bindArguments matches a call's arguments to fn's parameters: named
// arguments first, then positional ones into the first free parameters in
// declaration order, then defaults for whatever is left. Defaults are
// evaluated anew on every call. Nothing is bound unless all of it succeeds.
func (e *Evaluator) bindArguments(fn *object.Function, args []*ast.Argument) ([]boundArgument, error) {
	params := fn.Definition.Parameters
	values := make([]object.Value, len(params))

	indexOf := func(name string) int {
		for i, p := range params {
			if p.Name == name {
				return i
			}
		}
		return -1
	}

	for _, arg := range args {
		if arg.Name == "" {
			continue
		}
		i := indexOf(arg.Name)
		if i < 0 {
			return nil, object.NewError(object.UnknownParameter, "function '%s' has no parameter '%s'", fn.Name, arg.Name).At(arg.Token.Position)
		}
		if values[i] != nil {
			return nil, object.NewError(object.UnknownParameter, "parameter '%s' of '%s' is given more than once", arg.Name, fn.Name).At(arg.Token.Position)
		}
		val, err := e.eval(arg.Value)
		if err != nil {
			return nil, err
		}
		if err := checkArgument(fn, params[i], val); err != nil {
			return nil, at(err, arg.Value)
		}
		values[i] = val
	}

	next := 0
	for _, arg := range args {
		if arg.Name != "" {
			continue
		}
		for next < len(params) && values[next] != nil {
			next++
		}
		if next == len(params) {
			return nil, object.NewError(object.TooManyArguments, "function '%s' takes %d arguments", fn.Name, len(params)).At(ast.Pos(arg.Value))
		}
		val, err := e.eval(arg.Value)
		if err != nil {
			return nil, err
		}
		if err := checkArgument(fn, params[next], val); err != nil {
			return nil, at(err, arg.Value)
		}
		values[next] = val
	}

	for i, p := range params {
		if values[i] != nil || p.Default == nil {
			continue
		}
		val, err := e.eval(p.Default)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}

	bound := make([]boundArgument, len(params))
	for i, p := range params {
		if values[i] == nil {
			return nil, object.NewError(object.MissingArgument, "function '%s' is missing argument '%s'", fn.Name, p.Name)
		}
		bound[i] = boundArgument{name: p.Name, value: values[i]}
	}
	return bound, nil
}

func checkArgument(fn *object.Function, param *ast.Parameter, val object.Value) error {
	if param.Type == nil {
		return nil
	}
	declared := object.FromTypeExpr(param.Type)
	if actual := object.TypeOf(val); !declared.Equals(actual) {
		return object.NewError(object.TypeMismatch, "argument '%s' of '%s' must be %s, got %s", param.Name, fn.Name, declared, actual)
	}
	return nil
}

// evalArguments evaluates arguments left to right for a built-in.
func (e *Evaluator) evalArguments(args []*ast.Argument) ([]callArgument, error) {
	result := make([]callArgument, 0, len(args))
	for _, arg := range args {
		val, err := e.eval(arg.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, callArgument{name: arg.Name, value: val})
	}
	return result, nil
}
