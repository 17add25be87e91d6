package evaluator

import (
	"bufio"
	"chai/internal/ast"
	"chai/internal/object"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// LineReader supplies lines to the input built-in. Implementations show the
// prompt themselves.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineReader reads lines from r, writing prompts to out.
func NewLineReader(r io.Reader, out io.Writer) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r), out: out}
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

type Evaluator struct {
	Env *object.Environment
	Out io.Writer
	In  LineReader

	functions map[string]*object.Function
	// declarations maps each name of a frame (index 0 is the globals) to the
	// statement that declared it.
	declarations []map[string]*ast.DeclarationStatement
}

func New(out io.Writer, in LineReader) *Evaluator {
	return &Evaluator{
		Env:       object.NewEnvironment(),
		Out:       out,
		In:        in,
		functions: make(map[string]*object.Function),

		declarations: []map[string]*ast.DeclarationStatement{{}},
	}
}

// Run executes a whole program: function definitions are registered first,
// top-level declarations run in order into the global scope and then main is
// called with no arguments.
func (e *Evaluator) Run(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if def, ok := stmt.(*ast.FunctionDefinition); ok {
			if err := e.define(def); err != nil {
				return err
			}
		}
	}

	for _, stmt := range program.Statements {
		if _, ok := stmt.(*ast.FunctionDefinition); ok {
			continue
		}
		flow, err := e.execute(stmt)
		if err != nil {
			return err
		}
		if err := escaped(flow); err != nil {
			return err
		}
	}

	main, ok := e.functions["main"]
	if !ok {
		return object.NewError(object.NameError, "no main function found")
	}

	slog.Info("running main", slog.Int("functions", len(e.functions)))
	_, err := e.callFunction(main, nil, ast.Pos(main.Definition))
	return err
}

// Exec runs statements one after another at the top level and returns the
// value of the last expression statement, or nil. The environment persists
// between calls.
func (e *Evaluator) Exec(program *ast.Program) (object.Value, error) {
	var last object.Value
	for _, stmt := range program.Statements {
		last = nil
		if def, ok := stmt.(*ast.FunctionDefinition); ok {
			e.functions[def.Name] = object.NewFunction(def)
			continue
		}
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			v, err := e.evalNode(es.Expression)
			if err != nil {
				return nil, at(err, es.Expression)
			}
			last = v
			continue
		}
		flow, err := e.execute(stmt)
		if err != nil {
			return nil, err
		}
		if err := escaped(flow); err != nil {
			return nil, err
		}
	}
	return last, nil
}

func (e *Evaluator) define(def *ast.FunctionDefinition) error {
	if _, exists := e.functions[def.Name]; exists {
		return object.NewError(object.DeclarationError, "function '%s' is already defined", def.Name).At(ast.Pos(def))
	}
	fn := object.NewFunction(def)
	e.functions[def.Name] = fn
	slog.Debug("registered function", slog.String("name", def.Name), slog.String("signature", fn.Signature.String()))
	return nil
}

// Function returns the user function registered under name.
func (e *Evaluator) Function(name string) (*object.Function, bool) {
	fn, ok := e.functions[name]
	return fn, ok
}

// at records node's position on err if it is a RuntimeError without one.
func at(err error, node ast.Node) error {
	var re *object.RuntimeError
	if errors.As(err, &re) {
		re.At(ast.Pos(node))
	}
	return err
}

func (e *Evaluator) pushFrame() {
	e.Env.PushFrame()
	e.declarations = append(e.declarations, map[string]*ast.DeclarationStatement{})
}

func (e *Evaluator) popFrame() {
	e.Env.PopFrame()
	e.declarations = e.declarations[:len(e.declarations)-1]
}
