package object

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	NameError ErrorKind = iota
	DeclarationError
	ConstViolation
	TypeMismatch
	UnknownParameter
	TooManyArguments
	MissingArgument
	InvalidOperands
	IndexOutOfRange
	KeyNotFound
	DivisionByZero
	UnsupportedIteration
	AssertionFailed
	ControlFlowError
)

var errorKindNames = [...]string{
	NameError:            "NameError",
	DeclarationError:     "DeclarationError",
	ConstViolation:       "ConstViolation",
	TypeMismatch:         "TypeMismatch",
	UnknownParameter:     "UnknownParameter",
	TooManyArguments:     "TooManyArguments",
	MissingArgument:      "MissingArgument",
	InvalidOperands:      "InvalidOperands",
	IndexOutOfRange:      "IndexOutOfRange",
	KeyNotFound:          "KeyNotFound",
	DivisionByZero:       "DivisionByZero",
	UnsupportedIteration: "UnsupportedIteration",
	AssertionFailed:      "AssertionFailed",
	ControlFlowError:     "ControlFlowError",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// RuntimeError is raised at the evaluation step that detects a failure and
// collects a stack frame for each function call it unwinds through.
type RuntimeError struct {
	Kind       ErrorKind
	Message    string
	Position   int  // source offset of the failing node
	Positioned bool // Position has been set
	StackTrace []*StackFrame
}

type StackFrame struct {
	Function string // Name of the function
	Position int    // Source offset of the call
}

func NewError(kind ErrorKind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (re *RuntimeError) Error() string {
	return re.Kind.String() + ": " + re.Message
}

// At records pos as the failure position unless one is already set.
func (re *RuntimeError) At(pos int) *RuntimeError {
	if !re.Positioned {
		re.Position = pos
		re.Positioned = true
	}
	return re
}

func (re *RuntimeError) PushFrame(function string, pos int) {
	re.StackTrace = append(re.StackTrace, &StackFrame{Function: function, Position: pos})
}

// IsKind reports whether err is, or wraps, a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// KindOf returns the name of err's ErrorKind, or "" for other errors.
func KindOf(err error) string {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind.String()
	}
	return ""
}
