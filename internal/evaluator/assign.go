package evaluator

import (
	"chai/internal/ast"
	"chai/internal/object"
)

// lvalue is a resolved assignment target: a variable and the index path
// leading from it to the addressed element.
type lvalue struct {
	name    string
	indices []ast.Expression // outermost container first
	values  []object.Value   // evaluated indices, filled by resolve
}

func newLValue(target ast.Expression) (*lvalue, error) {
	lv := &lvalue{}
	for {
		switch node := target.(type) {
		case *ast.Identifier:
			lv.name = node.Value
			// collected innermost first
			for i, j := 0, len(lv.indices)-1; i < j; i, j = i+1, j-1 {
				lv.indices[i], lv.indices[j] = lv.indices[j], lv.indices[i]
			}
			return lv, nil
		case *ast.IndexExpression:
			lv.indices = append(lv.indices, node.Index)
			target = node.Left
		default:
			return nil, object.NewError(object.TypeMismatch, "cannot assign to %s", target.String())
		}
	}
}

// resolve evaluates the indices and descends through all but the last of
// them, returning the container the last index applies to. For a plain name
// it returns nil.
func (e *Evaluator) resolve(lv *lvalue) (object.Value, error) {
	lv.values = make([]object.Value, len(lv.indices))
	for i, expr := range lv.indices {
		val, err := e.eval(expr)
		if err != nil {
			return nil, err
		}
		lv.values[i] = val
	}

	if len(lv.values) == 0 {
		return nil, nil
	}

	container, err := e.Env.Load(lv.name)
	if err != nil {
		return nil, err
	}
	for i, index := range lv.values[:len(lv.values)-1] {
		container, err = object.Index(container, index)
		if err != nil {
			return nil, at(err, lv.indices[i])
		}
	}
	return container, nil
}

// read returns the current value at the resolved location.
func (e *Evaluator) read(lv *lvalue, container object.Value) (object.Value, error) {
	if container == nil {
		return e.Env.Load(lv.name)
	}
	last := len(lv.values) - 1
	val, err := object.Index(container, lv.values[last])
	if err != nil {
		return nil, at(err, lv.indices[last])
	}
	return val, nil
}

func (e *Evaluator) write(lv *lvalue, container object.Value, val object.Value) error {
	if container == nil {
		binding, ok := e.Env.GetBinding(lv.name)
		if !ok {
			return object.NewError(object.NameError, "'%s' is assigned without being declared", lv.name)
		}
		if binding.IsConst {
			return object.NewError(object.ConstViolation, "cannot assign to constant '%s'", lv.name)
		}
		if want, got := object.TypeOf(binding.Value), object.TypeOf(val); !want.Equals(got) {
			return object.NewError(object.TypeMismatch, "cannot assign a value of type %s to '%s' of type %s", got, lv.name, want)
		}
		return e.Env.Assign(lv.name, val)
	}

	last := len(lv.values) - 1
	if err := setIndex(container, lv.values[last], val); err != nil {
		return at(err, lv.indices[last])
	}
	return nil
}

func setIndex(container, index, val object.Value) error {
	switch c := container.(type) {
	case *object.List:
		i, ok := index.(*object.Integer)
		if !ok {
			return object.NewError(object.TypeMismatch, "list indices must be Int, got %s", index.Kind())
		}
		if i.Value < 0 || i.Value >= int64(len(c.Elements)) {
			return object.NewError(object.IndexOutOfRange, "index %d out of range for list of length %d", i.Value, len(c.Elements))
		}
		c.Elements[i.Value] = val
		return nil
	case *object.Dict:
		c.Put(index, val)
		return nil
	case *object.Tuple:
		return object.NewError(object.TypeMismatch, "tuples are immutable")
	}
	return object.NewError(object.TypeMismatch, "cannot assign into a %s", container.Kind())
}

func (e *Evaluator) execAssign(node *ast.AssignStatement) error {
	lv, err := newLValue(node.Target)
	if err != nil {
		return err
	}
	container, err := e.resolve(lv)
	if err != nil {
		return err
	}
	val, err := e.eval(node.Value)
	if err != nil {
		return err
	}
	return e.write(lv, container, val)
}

func (e *Evaluator) execCompoundAssign(node *ast.CompoundAssignStatement) error {
	lv, err := newLValue(node.Target)
	if err != nil {
		return err
	}
	container, err := e.resolve(lv)
	if err != nil {
		return err
	}
	old, err := e.read(lv, container)
	if err != nil {
		return err
	}
	operand, err := e.eval(node.Value)
	if err != nil {
		return err
	}
	val, err := object.BinaryOp(node.Operator, old, operand)
	if err != nil {
		return err
	}
	return e.write(lv, container, val)
}
