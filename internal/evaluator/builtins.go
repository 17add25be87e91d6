package evaluator

import (
	"chai/internal/object"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type builtin func(e *Evaluator, args []callArgument) (object.Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"print": builtinPrint,
		"len":   builtinLen,
		"input": builtinInput,
	}
}

// IsBuiltin reports whether name is resolved to a built-in function.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// print writes its positional arguments separated by sep and followed by end.
func builtinPrint(e *Evaluator, args []callArgument) (object.Value, error) {
	sep, end := " ", "\n"
	parts := []string{}

	for _, arg := range args {
		switch arg.name {
		case "":
			parts = append(parts, arg.value.Inspect())
		case "sep", "end":
			s, ok := arg.value.(*object.String)
			if !ok {
				return nil, object.NewError(object.TypeMismatch, "print() argument '%s' must be String, got %s", arg.name, arg.value.Kind())
			}
			if arg.name == "sep" {
				sep = s.Value
			} else {
				end = s.Value
			}
		default:
			return nil, object.NewError(object.UnknownParameter, "print() has no parameter '%s'", arg.name)
		}
	}

	if _, err := io.WriteString(e.Out, strings.Join(parts, sep)+end); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return nil, nil
}

func positional(fn string, args []callArgument, min, max int) ([]object.Value, error) {
	values := []object.Value{}
	for _, arg := range args {
		if arg.name != "" {
			return nil, object.NewError(object.UnknownParameter, "%s() has no parameter '%s'", fn, arg.name)
		}
		values = append(values, arg.value)
	}
	if len(values) > max {
		return nil, object.NewError(object.TooManyArguments, "%s() takes at most %d arguments, got %d", fn, max, len(values))
	}
	if len(values) < min {
		return nil, object.NewError(object.MissingArgument, "%s() takes %d arguments, got %d", fn, min, len(values))
	}
	return values, nil
}

func builtinLen(e *Evaluator, args []callArgument) (object.Value, error) {
	values, err := positional("len", args, 1, 1)
	if err != nil {
		return nil, err
	}

	var n int
	switch v := values[0].(type) {
	case *object.String:
		n = utf8.RuneCountInString(v.Value)
	case *object.List:
		n = len(v.Elements)
	case *object.Tuple:
		n = len(v.Elements)
	case *object.Dict:
		n = v.Len()
	case *object.Set:
		n = v.Len()
	default:
		return nil, object.NewError(object.TypeMismatch, "a %s has no length", v.Kind())
	}
	return &object.Integer{Value: int64(n)}, nil
}

// input reads one line, without its line terminator. End of input reads as
// an empty string.
func builtinInput(e *Evaluator, args []callArgument) (object.Value, error) {
	values, err := positional("input", args, 0, 1)
	if err != nil {
		return nil, err
	}

	prompt := ""
	if len(values) == 1 {
		s, ok := values[0].(*object.String)
		if !ok {
			return nil, object.NewError(object.TypeMismatch, "input() prompt must be String, got %s", values[0].Kind())
		}
		prompt = s.Value
	}

	if e.In == nil {
		return &object.String{Value: ""}, nil
	}
	line, err := e.In.ReadLine(prompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input: %w", err)
	}
	return &object.String{Value: line}, nil
}
