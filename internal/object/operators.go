package object

import (
	"math"
	"strings"
)

// BinaryOp applies every binary operator except the short-circuiting `and`
// and `or`, which the evaluator handles itself.
func BinaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		return add(left, right)
	case "-":
		return arithmetic(op, left, right,
			func(a, b int64) int64 { return a - b },
			func(a, b float64) float64 { return a - b })
	case "*":
		return multiply(left, right)
	case "/":
		if !IsNumeric(left) || !IsNumeric(right) {
			return nil, operandError(TypeMismatch, op, left, right)
		}
		a, _ := ToFloat(left)
		b, _ := ToFloat(right)
		return &Float{Value: a / b}, nil
	case "//":
		return floorDivide(left, right)
	case "%":
		return modulo(left, right)
	case "**":
		return power(left, right)
	case "&", "|", "^", "<<", ">>":
		return bitwise(op, left, right)
	case "::":
		list, ok := right.(*List)
		if !ok {
			return nil, NewError(TypeMismatch, "right operand of :: must be a List, got %s", right.Kind())
		}
		elements := make([]Value, 0, len(list.Elements)+1)
		elements = append(elements, left)
		return &List{Elements: append(elements, list.Elements...)}, nil
	case "==", "!=":
		if !equatable(left, right) {
			return nil, operandError(InvalidOperands, op, left, right)
		}
		eq := Equal(left, right)
		return NativeBool(eq == (op == "==")), nil
	case "<":
		return compare(left, right, false)
	case ">":
		return compare(right, left, false)
	case "<=":
		return compare(right, left, true)
	case ">=":
		return compare(left, right, true)
	case "in", "not in":
		found, err := Contains(right, left)
		if err != nil {
			return nil, err
		}
		return NativeBool(found == (op == "in")), nil
	}
	return nil, NewError(InvalidOperands, "unknown operator: %s", op)
}

// UnaryOp applies a prefix operator.
func UnaryOp(op string, operand Value) (Value, error) {
	switch op {
	case "-":
		switch v := operand.(type) {
		case *Integer:
			return &Integer{Value: -v.Value}, nil
		case *Float:
			return &Float{Value: -v.Value}, nil
		}
	case "+":
		if IsNumeric(operand) {
			return operand, nil
		}
	case "~":
		if v, ok := operand.(*Integer); ok {
			return &Integer{Value: ^v.Value}, nil
		}
	case "not":
		if v, ok := operand.(*Boolean); ok {
			return NativeBool(!v.Value), nil
		}
	default:
		return nil, NewError(InvalidOperands, "unknown operator: %s", op)
	}
	return nil, NewError(TypeMismatch, "unsupported operand type for unary %s: %s", op, operand.Kind())
}

func operandError(kind ErrorKind, op string, left, right Value) *RuntimeError {
	return NewError(kind, "unsupported operand types for %s: %s and %s", op, left.Kind(), right.Kind())
}

// arithmetic keeps Int op Int as an Int and widens anything else to Float.
func arithmetic(op string, left, right Value, ints func(a, b int64) int64, floats func(a, b float64) float64) (Value, error) {
	if !IsNumeric(left) || !IsNumeric(right) {
		return nil, operandError(TypeMismatch, op, left, right)
	}
	if l, ok := left.(*Integer); ok {
		if r, ok := right.(*Integer); ok {
			return &Integer{Value: ints(l.Value, r.Value)}, nil
		}
	}
	a, _ := ToFloat(left)
	b, _ := ToFloat(right)
	return &Float{Value: floats(a, b)}, nil
}

func add(left, right Value) (Value, error) {
	switch l := left.(type) {
	case *String:
		if r, ok := right.(*String); ok {
			return &String{Value: l.Value + r.Value}, nil
		}
	case *List:
		if r, ok := right.(*List); ok {
			elements := make([]Value, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			return &List{Elements: append(elements, r.Elements...)}, nil
		}
	}
	return arithmetic("+", left, right,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

func multiply(left, right Value) (Value, error) {
	seq, count := left, right
	if _, ok := left.(*Integer); ok {
		seq, count = right, left
	}

	if n, ok := count.(*Integer); ok {
		switch s := seq.(type) {
		case *String:
			if err := checkRepeat(len(s.Value), n.Value); err != nil {
				return nil, err
			}
			if n.Value <= 0 {
				return &String{Value: ""}, nil
			}
			return &String{Value: strings.Repeat(s.Value, int(n.Value))}, nil
		case *List:
			if err := checkRepeat(len(s.Elements), n.Value); err != nil {
				return nil, err
			}
			elements := []Value{}
			if len(s.Elements) == 0 {
				return &List{Elements: elements}, nil
			}
			for i := int64(0); i < n.Value; i++ {
				elements = append(elements, s.Elements...)
			}
			return &List{Elements: elements}, nil
		}
	}

	return arithmetic("*", left, right,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

// maxRepeatLength bounds the size of a repeated String (bytes) or List
// (elements).
const maxRepeatLength = 1 << 30

func checkRepeat(size int, count int64) error {
	if size == 0 || count <= 0 {
		return nil
	}
	if count > maxRepeatLength/int64(size) {
		return NewError(InvalidOperands, "repetition of %d items %d times is too large", size, count)
	}
	return nil
}

// floorDivide truncates both operands to Int and divides, rounding toward zero.
func floorDivide(left, right Value) (Value, error) {
	if !IsNumeric(left) || !IsNumeric(right) {
		return nil, operandError(TypeMismatch, "//", left, right)
	}
	a, _ := ToInt(left)
	b, _ := ToInt(right)
	if b == 0 {
		return nil, NewError(DivisionByZero, "integer division by zero")
	}
	return &Integer{Value: a / b}, nil
}

func modulo(left, right Value) (Value, error) {
	if !IsNumeric(left) || !IsNumeric(right) {
		return nil, operandError(TypeMismatch, "%", left, right)
	}
	if l, ok := left.(*Integer); ok {
		if r, ok := right.(*Integer); ok {
			if r.Value == 0 {
				return nil, NewError(DivisionByZero, "integer modulo by zero")
			}
			return &Integer{Value: l.Value % r.Value}, nil
		}
	}
	a, _ := ToFloat(left)
	b, _ := ToFloat(right)
	return &Float{Value: math.Mod(a, b)}, nil
}

func power(left, right Value) (Value, error) {
	if !IsNumeric(left) || !IsNumeric(right) {
		return nil, operandError(TypeMismatch, "**", left, right)
	}
	if l, ok := left.(*Integer); ok {
		if r, ok := right.(*Integer); ok && r.Value >= 0 {
			return &Integer{Value: intPow(l.Value, r.Value)}, nil
		}
	}
	a, _ := ToFloat(left)
	b, _ := ToFloat(right)
	return &Float{Value: math.Pow(a, b)}, nil
}

// intPow is exponentiation by squaring.
func intPow(base, exp int64) int64 {
	if exp == 0 {
		return 1
	}
	half := intPow(base, exp/2)
	if exp%2 == 0 {
		return half * half
	}
	return half * half * base
}

func bitwise(op string, left, right Value) (Value, error) {
	l, lok := left.(*Integer)
	r, rok := right.(*Integer)
	if !lok || !rok {
		return nil, operandError(TypeMismatch, op, left, right)
	}
	var result int64
	switch op {
	case "&":
		result = l.Value & r.Value
	case "|":
		result = l.Value | r.Value
	case "^":
		result = l.Value ^ r.Value
	case "<<":
		result = l.Value << uint64(r.Value&63)
	case ">>":
		result = l.Value >> uint64(r.Value&63)
	}
	return &Integer{Value: result}, nil
}

func equatable(left, right Value) bool {
	if IsNumeric(left) && IsNumeric(right) {
		return true
	}
	return left.Kind() == right.Kind()
}

// compare evaluates less(a, b), negated when negate is set. Every ordering
// operator is expressed through it.
func compare(a, b Value, negate bool) (Value, error) {
	less, err := Less(a, b)
	if err != nil {
		return nil, err
	}
	return NativeBool(less != negate), nil
}

// Less is the single ordering primitive: numbers (mixed Int/Float) and
// strings (lexicographic).
func Less(a, b Value) (bool, error) {
	if IsNumeric(a) && IsNumeric(b) {
		if ai, ok := a.(*Integer); ok {
			if bi, ok := b.(*Integer); ok {
				return ai.Value < bi.Value, nil
			}
		}
		af, _ := ToFloat(a)
		bf, _ := ToFloat(b)
		return af < bf, nil
	}
	if as, ok := a.(*String); ok {
		if bs, ok := b.(*String); ok {
			return as.Value < bs.Value, nil
		}
	}
	return false, NewError(InvalidOperands, "cannot order %s and %s", a.Kind(), b.Kind())
}

// Contains implements `item in container`.
func Contains(container, item Value) (bool, error) {
	switch c := container.(type) {
	case *String:
		s, ok := item.(*String)
		if !ok {
			return false, NewError(TypeMismatch, "'in <String>' requires a String on the left, got %s", item.Kind())
		}
		return strings.Contains(c.Value, s.Value), nil
	case *List:
		return containsValue(c.Elements, item), nil
	case *Tuple:
		return containsValue(c.Elements, item), nil
	case *Set:
		return c.Has(item), nil
	case *Dict:
		return c.Has(item), nil
	}
	return false, NewError(InvalidOperands, "'in' is not supported on %s", container.Kind())
}

func containsValue(elements []Value, item Value) bool {
	for _, el := range elements {
		if Equal(el, item) {
			return true
		}
	}
	return false
}

// Index reads container[index] for String, List, Tuple and Dict.
func Index(container, index Value) (Value, error) {
	if d, ok := container.(*Dict); ok {
		v, found := d.Get(index)
		if !found {
			return nil, NewError(KeyNotFound, "key %s not found", Nested(index))
		}
		return v, nil
	}

	var length int
	var runes []rune
	switch c := container.(type) {
	case *String:
		runes = []rune(c.Value)
		length = len(runes)
	case *List:
		length = len(c.Elements)
	case *Tuple:
		length = len(c.Elements)
	default:
		return nil, NewError(TypeMismatch, "%s is not indexable", container.Kind())
	}

	if _, ok := index.(*Integer); !ok {
		return nil, NewError(TypeMismatch, "index must be an Int, got %s", index.Kind())
	}
	i, _ := ToInt(index)
	if i < 0 || i >= int64(length) {
		return nil, NewError(IndexOutOfRange, "index %d out of range for length %d", i, length)
	}

	switch c := container.(type) {
	case *String:
		return &String{Value: string(runes[i])}, nil
	case *List:
		return c.Elements[i], nil
	case *Tuple:
		return c.Elements[i], nil
	}
	return nil, nil
}

// Slice reads container[start:end] for String, List and Tuple. A nil bound
// takes its default. A start past the end gives an empty result.
func Slice(container, start, end Value) (Value, error) {
	var length int
	var runes []rune
	switch c := container.(type) {
	case *String:
		runes = []rune(c.Value)
		length = len(runes)
	case *List:
		length = len(c.Elements)
	case *Tuple:
		length = len(c.Elements)
	default:
		return nil, NewError(TypeMismatch, "%s cannot be sliced", container.Kind())
	}

	bound := func(v Value, def int) (int, error) {
		if v == nil {
			return def, nil
		}
		if _, ok := v.(*Integer); !ok {
			return 0, NewError(TypeMismatch, "slice bound must be an Int, got %s", v.Kind())
		}
		i, _ := ToInt(v)
		if i < 0 || i > int64(length) {
			return 0, NewError(IndexOutOfRange, "slice bound %d out of range for length %d", i, length)
		}
		return int(i), nil
	}

	from, err := bound(start, 0)
	if err != nil {
		return nil, err
	}
	to, err := bound(end, length)
	if err != nil {
		return nil, err
	}
	if from > to {
		from = to
	}

	switch c := container.(type) {
	case *String:
		return &String{Value: string(runes[from:to])}, nil
	case *List:
		return &List{Elements: append([]Value{}, c.Elements[from:to]...)}, nil
	case *Tuple:
		return &Tuple{Elements: append([]Value{}, c.Elements[from:to]...)}, nil
	}
	return nil, nil
}

// Range builds the inclusive list [start .. end], counting down when
// start > end.
func Range(start, end Value) (*List, error) {
	from, err := ToInt(start)
	if err != nil {
		return nil, err
	}
	to, err := ToInt(end)
	if err != nil {
		return nil, err
	}

	elements := []Value{}
	if from <= to {
		for i := from; i <= to; i++ {
			elements = append(elements, &Integer{Value: i})
			if i == math.MaxInt64 {
				break
			}
		}
	} else {
		for i := from; i >= to; i-- {
			elements = append(elements, &Integer{Value: i})
			if i == math.MinInt64 {
				break
			}
		}
	}
	return &List{Elements: elements}, nil
}
