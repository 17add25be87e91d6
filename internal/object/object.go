package object

import (
	"bytes"
	"chai/internal/ast"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	INT_OBJ Kind = iota
	FLOAT_OBJ
	BOOL_OBJ
	STRING_OBJ
	LIST_OBJ
	TUPLE_OBJ
	DICT_OBJ
	SET_OBJ
	FUNCTION_OBJ
)

var kindNames = [...]string{
	INT_OBJ:      "Int",
	FLOAT_OBJ:    "Float",
	BOOL_OBJ:     "Bool",
	STRING_OBJ:   "String",
	LIST_OBJ:     "List",
	TUPLE_OBJ:    "Tuple",
	DICT_OBJ:     "Dict",
	SET_OBJ:      "Set",
	FUNCTION_OBJ: "Function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a runtime value. The set of implementations is closed: Integer,
// Float, Boolean, String, List, Tuple, Dict, Set and Function.
type Value interface {
	Kind() Kind
	// Inspect renders the value for top-level printing; strings are unquoted.
	Inspect() string
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

type Integer struct {
	Value int64
}

func (i *Integer) Kind() Kind      { return INT_OBJ }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Kind() Kind      { return FLOAT_OBJ }
func (f *Float) Inspect() string { return FormatFloat(f.Value) }

// FormatFloat prints a double the way the language always has: a decimal
// point is always present, and very small or large magnitudes switch to
// scientific notation with an upper-case E (1.0E10, 1.5E-4).
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-3 || abs >= 1e7) {
		s := strconv.FormatFloat(f, 'E', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "E")
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		exp = strings.TrimPrefix(exp, "+")
		if strings.HasPrefix(exp, "-") {
			exp = "-" + strings.TrimLeft(exp[1:], "0")
		} else {
			exp = strings.TrimLeft(exp, "0")
		}
		return mantissa + "E" + exp
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Kind() Kind { return BOOL_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

type String struct {
	Value string
}

func (s *String) Kind() Kind      { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

// NewString builds a String from literal source text, decoding the escapes
// \n, \t and \" in a single pass. Any other backslash is kept as written.
func NewString(raw string) *String {
	if !strings.Contains(raw, `\`) {
		return &String{Value: raw}
	}

	var out strings.Builder
	out.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			switch raw[i+1] {
			case 'n':
				out.WriteByte('\n')
				i++
				continue
			case 't':
				out.WriteByte('\t')
				i++
				continue
			case '"':
				out.WriteByte('"')
				i++
				continue
			}
		}
		out.WriteByte(raw[i])
	}
	return &String{Value: out.String()}
}

type List struct {
	Elements []Value
}

func (l *List) Kind() Kind      { return LIST_OBJ }
func (l *List) Inspect() string { return "[" + joinNested(l.Elements) + "]" }

type Tuple struct {
	Elements []Value
}

func (t *Tuple) Kind() Kind      { return TUPLE_OBJ }
func (t *Tuple) Inspect() string { return "(" + joinNested(t.Elements) + ")" }

type Function struct {
	Name       string
	Definition *ast.FunctionDefinition
	Signature  *Type
}

func (f *Function) Kind() Kind      { return FUNCTION_OBJ }
func (f *Function) Inspect() string { return "<function " + f.Name + ">" }

// NewFunction wraps a definition and computes its function type.
func NewFunction(def *ast.FunctionDefinition) *Function {
	subs := []*Type{FromTypeExpr(def.ReturnType)}
	for _, p := range def.Parameters {
		subs = append(subs, FromTypeExpr(p.Type))
	}
	return &Function{
		Name:       def.Name,
		Definition: def,
		Signature:  &Type{Kind: FUNCTION_OBJ, Subs: subs},
	}
}

// Nested renders v as it appears inside a container: strings are quoted.
func Nested(v Value) string {
	if s, ok := v.(*String); ok {
		return `"` + s.Value + `"`
	}
	return v.Inspect()
}

func joinNested(values []Value) string {
	var out bytes.Buffer
	for i, v := range values {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(Nested(v))
	}
	return out.String()
}

// ToInt narrows a numeric value to an int64, truncating floats.
func ToInt(v Value) (int64, error) {
	switch v := v.(type) {
	case *Integer:
		return v.Value, nil
	case *Float:
		return int64(v.Value), nil
	}
	return 0, NewError(TypeMismatch, "cannot convert %s to Int", v.Kind())
}

// ToFloat widens a numeric value to a float64.
func ToFloat(v Value) (float64, error) {
	switch v := v.(type) {
	case *Integer:
		return float64(v.Value), nil
	case *Float:
		return v.Value, nil
	}
	return 0, NewError(TypeMismatch, "cannot convert %s to Float", v.Kind())
}

func ToBool(v Value) (bool, error) {
	if b, ok := v.(*Boolean); ok {
		return b.Value, nil
	}
	return false, NewError(TypeMismatch, "cannot convert %s to Bool", v.Kind())
}

func IsNumeric(v Value) bool {
	k := v.Kind()
	return k == INT_OBJ || k == FLOAT_OBJ
}
