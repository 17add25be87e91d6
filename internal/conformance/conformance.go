package conformance

import (
	"bytes"
	"chai/internal/evaluator"
	"chai/internal/lexer"
	"chai/internal/object"
	"chai/internal/parser"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError is the error kind reported for programs that do not parse.
const ParseError = "ParseError"

// Case is one program together with its expected behaviour. Error holds the
// expected error kind name and is empty for programs that must succeed.
type Case struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
	Error  string `yaml:"error"`
}

type suiteFile struct {
	Cases []Case `yaml:"cases"`
}

type Result struct {
	Case      Case
	Stdout    string
	ErrorKind string
	Err       error
}

func (r Result) Passed() bool {
	return r.Stdout == r.Case.Stdout && r.ErrorKind == r.Case.Error
}

// Describe explains how the result differs from the expectation.
func (r Result) Describe() string {
	if r.Passed() {
		return "ok"
	}
	var b strings.Builder
	if r.Stdout != r.Case.Stdout {
		fmt.Fprintf(&b, "stdout: expected %q, got %q", r.Case.Stdout, r.Stdout)
	}
	if r.ErrorKind != r.Case.Error {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "error: expected %q, got %q", r.Case.Error, r.ErrorKind)
		if r.Err != nil {
			fmt.Fprintf(&b, " (%v)", r.Err)
		}
	}
	return b.String()
}

// Load decodes a case file. Unknown keys are rejected.
func Load(path string) ([]Case, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("conformance: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var suite suiteFile
	if err := decoder.Decode(&suite); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("conformance: %s is empty", path)
		}
		return nil, fmt.Errorf("conformance: parse %s: %w", path, err)
	}

	for i, c := range suite.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("conformance: case %d in %s has no name", i, path)
		}
	}
	slog.Debug("loaded conformance cases", slog.String("path", path), slog.Int("count", len(suite.Cases)))
	return suite.Cases, nil
}

// Run executes c's program with c.Stdin as input and captures its output.
func Run(c Case) Result {
	result := Result{Case: c}

	p := parser.New(lexer.New(c.Source), c.Source)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		result.ErrorKind = ParseError
		result.Err = errors.New(strings.Join(p.Errors(), "; "))
		return result
	}

	var out bytes.Buffer
	e := evaluator.New(&out, evaluator.NewLineReader(strings.NewReader(c.Stdin), &out))
	err := e.Run(program)

	result.Stdout = out.String()
	result.Err = err
	if err != nil {
		result.ErrorKind = object.KindOf(err)
		if result.ErrorKind == "" {
			result.ErrorKind = "Error"
		}
	}
	return result
}

// RunAll runs every case and returns the results in order.
func RunAll(cases []Case) []Result {
	results := make([]Result, len(cases))
	for i, c := range cases {
		results[i] = Run(c)
		slog.Debug("ran conformance case",
			slog.String("name", c.Name),
			slog.Bool("passed", results[i].Passed()))
	}
	return results
}
