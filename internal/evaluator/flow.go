package evaluator

import (
	"chai/internal/object"
)

type FlowKind int

const (
	FlowNormal FlowKind = iota
	FlowBreak
	FlowContinue
	FlowReturn
	FlowAssert
)

func (k FlowKind) String() string {
	switch k {
	case FlowBreak:
		return "break"
	case FlowContinue:
		return "continue"
	case FlowReturn:
		return "return"
	case FlowAssert:
		return "assert"
	}
	return "normal"
}

// Flow is the outcome of executing a statement. Anything other than
// FlowNormal unwinds the enclosing statements until a loop (break, continue),
// a function call (return) or the top level (assert) consumes it.
type Flow struct {
	Kind   FlowKind
	Value  object.Value // returned value, nil for a bare return
	Source string       // failed assert condition as written
	Pos    int          // position of the statement that raised the flow
}

var normal = Flow{}

// escaped converts a flow that reached a call boundary or the top level into
// the error it stands for.
func escaped(flow Flow) error {
	switch flow.Kind {
	case FlowBreak, FlowContinue:
		return object.NewError(object.ControlFlowError, "'%s' outside of a loop", flow.Kind).At(flow.Pos)
	case FlowReturn:
		return object.NewError(object.ControlFlowError, "'return' outside of a function").At(flow.Pos)
	case FlowAssert:
		return object.NewError(object.AssertionFailed, "%s", flow.Source).At(flow.Pos)
	}
	return nil
}
