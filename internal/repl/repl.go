package repl

import (
	"chai/internal/evaluator"
	"chai/internal/lexer"
	"chai/internal/object"
	"chai/internal/parser"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmorg/readline"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Terminal reads lines with editing and history from the controlling terminal.
type Terminal struct {
	rline *readline.Instance
}

func NewTerminal() *Terminal {
	return &Terminal{rline: readline.NewInstance()}
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.rline.SetPrompt(prompt)
	return readResult(t.rline.Readline())
}

// readResult maps readline's errors, which carry the ErrEOF and ErrCtrlC
// strings as their text: Ctrl+D ends input and Ctrl+C drops the line.
func readResult(line string, err error) (string, error) {
	if err == nil {
		return line, nil
	}
	switch err.Error() {
	case readline.ErrEOF:
		return "", io.EOF
	case readline.ErrCtrlC:
		return "", nil
	}
	return line, err
}

type REPL struct {
	in     evaluator.LineReader
	out    io.Writer
	prompt string
	eval   *evaluator.Evaluator
}

// New builds a REPL over a persistent evaluator. The input built-in reads
// from the same line source.
func New(in evaluator.LineReader, out io.Writer, prompt string) *REPL {
	if prompt == "" {
		prompt = PROMPT
	}
	return &REPL{
		in:     in,
		out:    out,
		prompt: prompt,
		eval:   evaluator.New(out, in),
	}
}

// Start reads and runs input until end of input. A line ending in ':' opens a
// block that continues until an empty line.
func (r *REPL) Start() error {
	for {
		line, err := r.in.ReadLine(r.prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		source := line + "\n"
		if strings.HasSuffix(strings.TrimSpace(line), ":") {
			for {
				more, err := r.in.ReadLine(CONTINUATION)
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				if strings.TrimSpace(more) == "" {
					break
				}
				source += more + "\n"
				if err != nil {
					break
				}
			}
		}

		r.Eval(source)
	}
}

// Eval runs one chunk of input and prints the value of a trailing expression.
func (r *REPL) Eval(source string) {
	p := parser.New(lexer.New(source), source)
	p.Interactive = true
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		printParserErrors(r.out, p.Errors())
		return
	}

	val, err := r.eval.Exec(program)
	if err != nil {
		slog.Debug("repl evaluation failed", slog.Any("error", err))
		var re *object.RuntimeError
		if errors.As(err, &re) {
			io.WriteString(r.out, object.RenderStacktrace(re, source, "<repl>"))
		} else {
			fmt.Fprintf(r.out, "%s\n", err)
		}
		return
	}
	if val != nil {
		io.WriteString(r.out, object.Nested(val)+"\n")
	}
}

func printParserErrors(out io.Writer, errors []string) {
	io.WriteString(out, "parser errors:\n")
	for _, msg := range errors {
		io.WriteString(out, "\t"+msg+"\n")
	}
}
