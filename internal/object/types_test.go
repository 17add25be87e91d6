package object

import (
	"chai/internal/ast"
	"testing"
)

func list(sub *Type) *Type { return &Type{Kind: LIST_OBJ, Subs: []*Type{sub}} }

func TestTypeEquals(t *testing.T) {
	intT := Scalar(INT_OBJ)
	floatT := Scalar(FLOAT_OBJ)
	openList := &Type{Kind: LIST_OBJ}
	openDict := &Type{Kind: DICT_OBJ}
	fn := func(ret *Type, params ...*Type) *Type {
		return &Type{Kind: FUNCTION_OBJ, Subs: append([]*Type{ret}, params...)}
	}

	tests := []struct {
		a, b     *Type
		expected bool
	}{
		{intT, Scalar(INT_OBJ), true},
		{intT, floatT, false},
		{list(intT), list(intT), true},
		{list(intT), list(floatT), false},
		{openList, list(intT), true},
		{list(list(intT)), list(openList), true},
		{openDict, &Type{Kind: DICT_OBJ, Subs: []*Type{Scalar(STRING_OBJ), intT}}, true},
		{&Type{Kind: SET_OBJ}, openList, false},
		{&Type{Kind: TUPLE_OBJ, Subs: []*Type{intT, floatT}}, &Type{Kind: TUPLE_OBJ, Subs: []*Type{intT, floatT}}, true},
		{&Type{Kind: TUPLE_OBJ, Subs: []*Type{intT}}, &Type{Kind: TUPLE_OBJ, Subs: []*Type{intT, floatT}}, false},
		{&Type{Kind: TUPLE_OBJ}, &Type{Kind: TUPLE_OBJ, Subs: []*Type{intT}}, false},
		{fn(intT, intT), fn(intT, intT), true},
		{fn(nil, intT), fn(nil, intT), true},
		{fn(nil, intT), fn(intT, intT), false},
		{fn(intT, intT), fn(intT, intT, intT), false},
	}

	for i, tt := range tests {
		if got := tt.a.Equals(tt.b); got != tt.expected {
			t.Errorf("tests[%d] - %s == %s expected=%t, got=%t", i, tt.a, tt.b, tt.expected, got)
		}
		// symmetric
		if got := tt.b.Equals(tt.a); got != tt.expected {
			t.Errorf("tests[%d] - %s == %s expected=%t, got=%t", i, tt.b, tt.a, tt.expected, got)
		}
		// reflexive
		if !tt.a.Equals(tt.a) {
			t.Errorf("tests[%d] - %s is not equal to itself", i, tt.a)
		}
	}
}

func TestTypeString(t *testing.T) {
	intT := Scalar(INT_OBJ)
	tests := []struct {
		typ      *Type
		expected string
	}{
		{intT, "Int"},
		{list(Scalar(STRING_OBJ)), "[String]"},
		{&Type{Kind: SET_OBJ, Subs: []*Type{intT}}, "{Int}"},
		{&Type{Kind: DICT_OBJ, Subs: []*Type{Scalar(STRING_OBJ), intT}}, "{String: Int}"},
		{&Type{Kind: TUPLE_OBJ, Subs: []*Type{intT, Scalar(BOOL_OBJ)}}, "(Int, Bool)"},
		{&Type{Kind: FUNCTION_OBJ, Subs: []*Type{Scalar(BOOL_OBJ), intT, intT}}, "Int -> Int -> Bool"},
		{&Type{Kind: FUNCTION_OBJ, Subs: []*Type{nil}}, "() -> Void"},
		{&Type{Kind: LIST_OBJ}, "[]"},
	}

	for i, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestTypeOf(t *testing.T) {
	dict := NewDict()
	dict.Put(&String{Value: "a"}, &Float{Value: 1})

	tests := []struct {
		value    Value
		expected string
	}{
		{&Integer{Value: 1}, "Int"},
		{&List{Elements: []Value{&Integer{Value: 1}, &String{Value: "x"}}}, "[Int]"},
		{&List{Elements: []Value{}}, "[]"},
		{&List{Elements: []Value{&List{Elements: []Value{}}}}, "[[]]"},
		{&Tuple{Elements: []Value{&Integer{Value: 1}, &String{Value: "x"}}}, "(Int, String)"},
		{dict, "{String: Float}"},
		{NewDict(), "{:}"},
	}

	for i, tt := range tests {
		if got := TypeOf(tt.value).String(); got != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestFromTypeExpr(t *testing.T) {
	te := &ast.TypeExpr{Name: "Function", Subs: []*ast.TypeExpr{
		{Name: "Bool"},
		{Name: "List", Subs: []*ast.TypeExpr{{Name: "Int"}}},
	}}
	typ := FromTypeExpr(te)
	if typ.String() != "[Int] -> Bool" {
		t.Fatalf("expected [Int] -> Bool, got %s", typ)
	}
	if FromTypeExpr(&ast.TypeExpr{Name: "Void"}) != nil {
		t.Fatalf("Void should convert to nil")
	}
}

func TestFunctionSignature(t *testing.T) {
	def := &ast.FunctionDefinition{
		Name: "add",
		Parameters: []*ast.Parameter{
			{Name: "a", Type: &ast.TypeExpr{Name: "Int"}},
			{Name: "b", Type: &ast.TypeExpr{Name: "Float"}},
		},
		ReturnType: &ast.TypeExpr{Name: "Float"},
	}
	fn := NewFunction(def)
	if fn.Signature.String() != "Int -> Float -> Float" {
		t.Fatalf("unexpected signature %s", fn.Signature)
	}
	if !TypeOf(fn).Equals(FromTypeExpr(&ast.TypeExpr{Name: "Function", Subs: []*ast.TypeExpr{
		{Name: "Float"}, {Name: "Int"}, {Name: "Float"},
	}})) {
		t.Fatalf("function value does not match its written type")
	}
}
