package object

import (
	"math"
	"testing"
)

func i64(v int64) *Integer   { return &Integer{Value: v} }
func f64(v float64) *Float   { return &Float{Value: v} }
func str(v string) *String   { return &String{Value: v} }
func lst(vs ...Value) *List  { return &List{Elements: vs} }
func tup(vs ...Value) *Tuple { return &Tuple{Elements: vs} }

func TestBinaryOp(t *testing.T) {
	tests := []struct {
		op          string
		left, right Value
		expected    string
		kind        Kind
	}{
		{"+", i64(1), i64(2), "3", INT_OBJ},
		{"+", i64(1), f64(2), "3.0", FLOAT_OBJ},
		{"+", str("ab"), str("cd"), "abcd", STRING_OBJ},
		{"+", lst(i64(1)), lst(i64(2)), "[1, 2]", LIST_OBJ},
		{"-", f64(1.5), i64(1), "0.5", FLOAT_OBJ},
		{"*", str("ab"), i64(3), "ababab", STRING_OBJ},
		{"*", i64(3), str("x"), "xxx", STRING_OBJ},
		{"*", lst(i64(1), i64(2)), i64(2), "[1, 2, 1, 2]", LIST_OBJ},
		{"*", i64(2), lst(i64(0)), "[0, 0]", LIST_OBJ},
		{"*", str("ab"), i64(0), "", STRING_OBJ},
		{"*", str("ab"), i64(-2), "", STRING_OBJ},
		{"*", lst(i64(1)), i64(-1), "[]", LIST_OBJ},
		{"*", i64(6), i64(7), "42", INT_OBJ},
		{"/", i64(1), i64(2), "0.5", FLOAT_OBJ},
		{"/", i64(4), i64(2), "2.0", FLOAT_OBJ},
		{"/", i64(1), i64(0), "Infinity", FLOAT_OBJ},
		{"//", i64(1), i64(2), "0", INT_OBJ},
		{"//", i64(-7), i64(2), "-3", INT_OBJ},
		{"//", f64(7.9), i64(2), "3", INT_OBJ},
		{"%", i64(7), i64(3), "1", INT_OBJ},
		{"%", i64(-7), i64(3), "-1", INT_OBJ},
		{"%", f64(7.5), i64(2), "1.5", FLOAT_OBJ},
		{"**", i64(2), i64(10), "1024", INT_OBJ},
		{"**", i64(3), i64(0), "1", INT_OBJ},
		{"**", i64(2), i64(-1), "0.5", FLOAT_OBJ},
		{"**", f64(4), f64(0.5), "2.0", FLOAT_OBJ},
		{"&", i64(6), i64(3), "2", INT_OBJ},
		{"|", i64(6), i64(3), "7", INT_OBJ},
		{"^", i64(6), i64(3), "5", INT_OBJ},
		{"<<", i64(1), i64(4), "16", INT_OBJ},
		{">>", i64(-16), i64(2), "-4", INT_OBJ},
		{"<<", i64(1), i64(64), "1", INT_OBJ},
		{"::", i64(0), lst(i64(1)), "[0, 1]", LIST_OBJ},
		{"==", i64(1), f64(1), "True", BOOL_OBJ},
		{"!=", str("a"), str("b"), "True", BOOL_OBJ},
		{"==", lst(i64(1), lst(i64(2))), lst(i64(1), lst(i64(2))), "True", BOOL_OBJ},
		{"==", tup(i64(1)), tup(i64(2)), "False", BOOL_OBJ},
		{"<", i64(1), f64(1.5), "True", BOOL_OBJ},
		{"<", str("abc"), str("abd"), "True", BOOL_OBJ},
		{">", i64(2), i64(1), "True", BOOL_OBJ},
		{"<=", i64(2), i64(2), "True", BOOL_OBJ},
		{">=", i64(1), i64(2), "False", BOOL_OBJ},
		{"in", str("ell"), str("hello"), "True", BOOL_OBJ},
		{"in", i64(2), lst(i64(1), f64(2)), "True", BOOL_OBJ},
		{"not in", i64(3), tup(i64(1), i64(2)), "True", BOOL_OBJ},
	}

	for i, tt := range tests {
		result, err := BinaryOp(tt.op, tt.left, tt.right)
		if err != nil {
			t.Errorf("tests[%d] - %s %s %s: unexpected error %v", i, tt.left.Inspect(), tt.op, tt.right.Inspect(), err)
			continue
		}
		if result.Kind() != tt.kind {
			t.Errorf("tests[%d] - %s %s %s: kind expected=%s, got=%s", i, tt.left.Inspect(), tt.op, tt.right.Inspect(), tt.kind, result.Kind())
		}
		if result.Inspect() != tt.expected {
			t.Errorf("tests[%d] - %s %s %s: expected=%q, got=%q", i, tt.left.Inspect(), tt.op, tt.right.Inspect(), tt.expected, result.Inspect())
		}
	}
}

func TestBinaryOpErrors(t *testing.T) {
	tests := []struct {
		op          string
		left, right Value
		kind        ErrorKind
	}{
		{"+", str("a"), i64(1), TypeMismatch},
		{"-", str("a"), str("b"), TypeMismatch},
		{"*", str("a"), f64(2), TypeMismatch},
		{"/", TRUE, i64(1), TypeMismatch},
		{"//", i64(1), i64(0), DivisionByZero},
		{"%", i64(1), i64(0), DivisionByZero},
		{"&", f64(1), i64(1), TypeMismatch},
		{"<", str("a"), i64(1), InvalidOperands},
		{"<", lst(), lst(), InvalidOperands},
		{"==", i64(1), str("1"), InvalidOperands},
		{"==", lst(), tup(), InvalidOperands},
		{"::", i64(1), tup(), TypeMismatch},
		{"in", i64(1), str("1"), TypeMismatch},
		{"in", i64(1), i64(1), InvalidOperands},
		{"*", str("ab"), i64(4611686018427387904), InvalidOperands},
		{"*", i64(math.MaxInt64), str("x"), InvalidOperands},
		{"*", lst(i64(1), i64(2)), i64(1 << 40), InvalidOperands},
	}

	for i, tt := range tests {
		_, err := BinaryOp(tt.op, tt.left, tt.right)
		if !IsKind(err, tt.kind) {
			t.Errorf("tests[%d] - %s %s %s: expected %s, got %v", i, tt.left.Inspect(), tt.op, tt.right.Inspect(), tt.kind, err)
		}
	}
}

func TestRepeatWithinLimit(t *testing.T) {
	tests := []struct {
		left, right Value
		expected    string
	}{
		{str(""), i64(math.MaxInt64), ""},
		{lst(), i64(math.MaxInt64), "[]"},
		{str("ab"), i64(-4611686018427387904), ""},
		{i64(3), str("xy"), "xyxyxy"},
	}

	for i, tt := range tests {
		got, err := BinaryOp("*", tt.left, tt.right)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error %v", i, err)
		}
		if got.Inspect() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, got.Inspect())
		}
	}
}

func TestFloatModAndPowEdgeCases(t *testing.T) {
	result, err := BinaryOp("%", f64(1), f64(0))
	if err != nil || !math.IsNaN(result.(*Float).Value) {
		t.Fatalf("expected NaN for float modulo by zero, got %v, %v", result, err)
	}
	result, err = BinaryOp("/", f64(-1), i64(0))
	if err != nil || result.Inspect() != "-Infinity" {
		t.Fatalf("expected -Infinity, got %v, %v", result, err)
	}
}

func TestUnaryOp(t *testing.T) {
	tests := []struct {
		op       string
		operand  Value
		expected string
	}{
		{"-", i64(5), "-5"},
		{"-", f64(1.5), "-1.5"},
		{"+", f64(2), "2.0"},
		{"~", i64(0), "-1"},
		{"not", TRUE, "False"},
	}

	for i, tt := range tests {
		result, err := UnaryOp(tt.op, tt.operand)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error %v", i, err)
		}
		if result.Inspect() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, result.Inspect())
		}
	}

	failures := []struct {
		op      string
		operand Value
	}{
		{"-", str("a")},
		{"+", TRUE},
		{"~", f64(1)},
		{"not", i64(0)},
	}
	for i, tt := range failures {
		if _, err := UnaryOp(tt.op, tt.operand); !IsKind(err, TypeMismatch) {
			t.Errorf("failures[%d] - expected TypeMismatch, got %v", i, err)
		}
	}
}

func TestIndex(t *testing.T) {
	d := NewDict()
	d.Put(str("k"), i64(1))

	tests := []struct {
		container, index Value
		expected         string
	}{
		{str("héllo"), i64(1), "é"},
		{lst(i64(10), i64(20)), i64(1), "20"},
		{tup(str("a"), str("b")), i64(0), "a"},
		{d, str("k"), "1"},
	}
	for i, tt := range tests {
		v, err := Index(tt.container, tt.index)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error %v", i, err)
		}
		if v.Inspect() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, v.Inspect())
		}
	}

	errors := []struct {
		container, index Value
		kind             ErrorKind
	}{
		{lst(i64(1)), i64(1), IndexOutOfRange},
		{lst(i64(1)), i64(-1), IndexOutOfRange},
		{str(""), i64(0), IndexOutOfRange},
		{d, str("missing"), KeyNotFound},
		{i64(1), i64(0), TypeMismatch},
		{lst(i64(1)), str("0"), TypeMismatch},
	}
	for i, tt := range errors {
		if _, err := Index(tt.container, tt.index); !IsKind(err, tt.kind) {
			t.Errorf("errors[%d] - expected %s, got %v", i, tt.kind, err)
		}
	}
}

func TestSlice(t *testing.T) {
	xs := lst(i64(1), i64(2), i64(3), i64(4))
	tests := []struct {
		container  Value
		start, end Value
		expected   string
	}{
		{xs, i64(1), i64(3), "[2, 3]"},
		{xs, nil, i64(2), "[1, 2]"},
		{xs, i64(2), nil, "[3, 4]"},
		{xs, nil, nil, "[1, 2, 3, 4]"},
		{xs, i64(3), i64(1), "[]"},
		{str("hello"), i64(1), i64(4), "ell"},
		{tup(i64(1), i64(2)), i64(1), nil, "(2)"},
	}
	for i, tt := range tests {
		v, err := Slice(tt.container, tt.start, tt.end)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error %v", i, err)
		}
		if v.Inspect() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, v.Inspect())
		}
	}

	if _, err := Slice(xs, i64(0), i64(5)); !IsKind(err, IndexOutOfRange) {
		t.Errorf("expected IndexOutOfRange, got %v", err)
	}

	sliced, _ := Slice(xs, nil, nil)
	sliced.(*List).Elements[0] = i64(99)
	if xs.Elements[0].Inspect() != "1" {
		t.Errorf("slice shares storage with its source")
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		start, end Value
		expected   string
	}{
		{i64(1), i64(5), "[1, 2, 3, 4, 5]"},
		{i64(3), i64(1), "[3, 2, 1]"},
		{i64(2), i64(2), "[2]"},
		{f64(1.9), i64(3), "[1, 2, 3]"},
	}
	for i, tt := range tests {
		v, err := Range(tt.start, tt.end)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error %v", i, err)
		}
		if v.Inspect() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, v.Inspect())
		}
	}
	if _, err := Range(str("a"), i64(1)); !IsKind(err, TypeMismatch) {
		t.Errorf("expected TypeMismatch, got %v", err)
	}
}
