package evaluator

import (
	"chai/internal/ast"
	"chai/internal/object"
	"errors"
	"log/slog"
)

// evalCall resolves the callee among the built-ins, then the defined
// functions and finally variables holding a function value.
func (e *Evaluator) evalCall(node *ast.CallExpression) (object.Value, error) {
	name := node.Function.Value

	if builtin, ok := builtins[name]; ok {
		args, err := e.evalArguments(node.Arguments)
		if err != nil {
			return nil, err
		}
		return builtin(e, args)
	}

	if fn, ok := e.functions[name]; ok {
		return e.callFunction(fn, node.Arguments, ast.Pos(node))
	}

	if b, ok := e.Env.GetBinding(name); ok {
		fn, ok := b.Value.(*object.Function)
		if !ok {
			return nil, object.NewError(object.TypeMismatch, "'%s' is a %s, not a function", name, b.Value.Kind())
		}
		return e.callFunction(fn, node.Arguments, ast.Pos(node))
	}

	return nil, object.NewError(object.NameError, "function '%s' is not defined", name)
}

// callFunction binds the arguments in the caller's scope, runs the body in a
// fresh frame and turns the flow that ends it into the call's result.
func (e *Evaluator) callFunction(fn *object.Function, args []*ast.Argument, pos int) (object.Value, error) {
	bound, err := e.bindArguments(fn, args)
	if err != nil {
		return nil, err
	}

	result, err := e.invoke(fn, bound)
	if err != nil {
		var re *object.RuntimeError
		if errors.As(err, &re) {
			re.PushFrame(fn.Name, pos)
		}
		return nil, err
	}
	return result, nil
}

func (e *Evaluator) invoke(fn *object.Function, bound []boundArgument) (object.Value, error) {
	e.pushFrame()
	defer e.popFrame()

	for _, arg := range bound {
		if err := e.Env.Store(arg.name, arg.value, false); err != nil {
			return nil, err
		}
	}

	slog.Debug("calling function", slog.String("name", fn.Name), slog.Int("depth", e.Env.Depth()))

	flow, err := e.execBlock(fn.Definition.Body)
	if err != nil {
		return nil, err
	}

	switch flow.Kind {
	case FlowNormal:
		return nil, nil
	case FlowReturn:
		if err := checkReturn(fn, flow.Value); err != nil {
			return nil, err.At(flow.Pos)
		}
		return flow.Value, nil
	}
	return nil, escaped(flow)
}

func checkReturn(fn *object.Function, val object.Value) *object.RuntimeError {
	declared := fn.Signature.Subs[0]
	switch {
	case declared == nil && val != nil:
		return object.NewError(object.TypeMismatch, "function '%s' returns Void but returned a %s", fn.Name, object.TypeOf(val))
	case declared != nil && val != nil && !declared.Equals(object.TypeOf(val)):
		return object.NewError(object.TypeMismatch, "function '%s' must return %s, got %s", fn.Name, declared, object.TypeOf(val))
	}
	return nil
}
