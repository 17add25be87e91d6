package object

import (
	"chai/internal/ast"
	"strings"
)

// Type is a structural type descriptor. A nil *Type stands for Void, which
// only appears as a function's return type.
//
//	List, Set  Subs[0] is the element type
//	Dict       Subs[0] is the key type, Subs[1] the value type
//	Tuple      one sub per slot
//	Function   Subs[0] is the return type, then the parameter types in order
//
// A List, Set or Dict with no Subs is open: it matches any type of the same
// kind. Values of empty containers have open types.
type Type struct {
	Kind Kind
	Subs []*Type
}

func Scalar(k Kind) *Type { return &Type{Kind: k} }

var typeNames = map[string]Kind{
	"Int":      INT_OBJ,
	"Float":    FLOAT_OBJ,
	"Bool":     BOOL_OBJ,
	"String":   STRING_OBJ,
	"List":     LIST_OBJ,
	"Tuple":    TUPLE_OBJ,
	"Dict":     DICT_OBJ,
	"Set":      SET_OBJ,
	"Function": FUNCTION_OBJ,
}

// FromTypeExpr converts a written annotation. nil and Void both yield nil.
func FromTypeExpr(te *ast.TypeExpr) *Type {
	if te == nil || te.Name == "Void" {
		return nil
	}
	t := &Type{Kind: typeNames[te.Name]}
	for _, sub := range te.Subs {
		t.Subs = append(t.Subs, FromTypeExpr(sub))
	}
	return t
}

// Equals compares two types structurally. It is reflexive and symmetric.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case LIST_OBJ, SET_OBJ, DICT_OBJ:
		if len(t.Subs) == 0 || len(other.Subs) == 0 {
			return true
		}
		return subsEqual(t.Subs, other.Subs)
	case TUPLE_OBJ, FUNCTION_OBJ:
		return subsEqual(t.Subs, other.Subs)
	case INT_OBJ, FLOAT_OBJ, BOOL_OBJ, STRING_OBJ:
		return true
	}
	return false
}

func subsEqual(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func (t *Type) String() string {
	if t == nil {
		return "Void"
	}

	subs := func(from int) []string {
		out := []string{}
		for _, s := range t.Subs[from:] {
			out = append(out, s.String())
		}
		return out
	}

	switch t.Kind {
	case LIST_OBJ:
		if len(t.Subs) == 0 {
			return "[]"
		}
		return "[" + t.Subs[0].String() + "]"
	case SET_OBJ:
		if len(t.Subs) == 0 {
			return "{}"
		}
		return "{" + t.Subs[0].String() + "}"
	case DICT_OBJ:
		if len(t.Subs) < 2 {
			return "{:}"
		}
		return "{" + t.Subs[0].String() + ": " + t.Subs[1].String() + "}"
	case TUPLE_OBJ:
		return "(" + strings.Join(subs(0), ", ") + ")"
	case FUNCTION_OBJ:
		if len(t.Subs) == 0 {
			return "Function"
		}
		params := subs(1)
		if len(params) == 0 {
			params = []string{"()"}
		}
		return strings.Join(append(params, t.Subs[0].String()), " -> ")
	}
	return t.Kind.String()
}

// TypeOf infers the type of a value. Container element types are taken from
// the first element.
func TypeOf(v Value) *Type {
	switch v := v.(type) {
	case *Integer, *Float, *Boolean, *String:
		return Scalar(v.Kind())
	case *List:
		if len(v.Elements) == 0 {
			return &Type{Kind: LIST_OBJ}
		}
		return &Type{Kind: LIST_OBJ, Subs: []*Type{TypeOf(v.Elements[0])}}
	case *Tuple:
		t := &Type{Kind: TUPLE_OBJ, Subs: make([]*Type, len(v.Elements))}
		for i, el := range v.Elements {
			t.Subs[i] = TypeOf(el)
		}
		return t
	case *Dict:
		if v.Len() == 0 {
			return &Type{Kind: DICT_OBJ}
		}
		first := v.entries[0]
		return &Type{Kind: DICT_OBJ, Subs: []*Type{TypeOf(first.Key), TypeOf(first.Value)}}
	case *Set:
		if v.Len() == 0 {
			return &Type{Kind: SET_OBJ}
		}
		return &Type{Kind: SET_OBJ, Subs: []*Type{TypeOf(v.elements[0])}}
	case *Function:
		return v.Signature
	}
	return nil
}
