package parser

import (
	"chai/internal/ast"
	"chai/internal/lexer"
	"strings"
	"testing"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input), input)
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("parser has %d errors", len(errors))
	for _, msg := range errors {
		t.Errorf("parser error: %q", msg)
	}
	t.FailNow()
}

// parseBody wraps body lines in `def main():` and returns main's statements.
func parseBody(t *testing.T, body ...string) []ast.Statement {
	t.Helper()
	input := "def main():\n"
	for _, line := range body {
		input += "    " + line + "\n"
	}
	program := parse(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("program.Statements does not contain 1 statement. got=%d", len(program.Statements))
	}
	fd, ok := program.Statements[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("program.Statements[0] is not *ast.FunctionDefinition. got=%T", program.Statements[0])
	}
	return fd.Body.Statements
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"2 ** -1", "(2 ** (-1))"},
		{"1 :: 2 :: xs", "(1 :: (2 :: xs))"},
		{"not a and b", "((not a) and b)"},
		{"not a == b", "(not (a == b))"},
		{"a or b and c", "(a or (b and c))"},
		{"x not in xs", "(x not in xs)"},
		{"x in xs or y in ys", "((x in xs) or (y in ys))"},
		{"a if c else b", "(a if c else b)"},
		{"a if c or d else b if e else f", "(a if (c or d) else (b if e else f))"},
		{"1 < 2 == True", "((1 < 2) == True)"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"~x // 2 % 3", "(((~x) // 2) % 3)"},
		{"f(1, b=2)", "f(1, b=2)"},
		{"f()", "f()"},
		{"f(g(1), [2, 3])", "f(g(1), [2, 3])"},
		{"xs[1][2]", "xs[1][2]"},
		{"xs[1:]", "xs[1:]"},
		{"xs[:2]", "xs[:2]"},
		{"xs[:]", "xs[:]"},
		{"xs[a:b]", "xs[a:b]"},
		{"[1 .. 5]", "[1 .. 5]"},
		{"[x * 2 for x in xs if x > 1]", "[(x * 2) for x in xs if (x > 1)]"},
		{"[a if c else b for x in xs]", "[(a if c else b) for x in xs]"},
		{"(1, 2)", "(1, 2)"},
		{"(1, 2,)", "(1, 2)"},
		{"()", "()"},
		{"(1)", "1"},
		{"[]", "[]"},
		{"{1: 2, 3: 4}", "{1: 2, 3: 4}"},
		{"{1, 2}", "{1, 2}"},
		{"{}", "{}"},
		{`"a\"b"`, `"a\"b"`},
		{"1.5 + .5", "(1.5 + .5)"},
	}

	for i, tt := range tests {
		stmts := parseBody(t, tt.input)
		if len(stmts) != 1 {
			t.Fatalf("tests[%d] - expected 1 statement, got=%d", i, len(stmts))
		}
		es, ok := stmts[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("tests[%d] - statement is not *ast.ExpressionStatement. got=%T", i, stmts[0])
		}
		if actual := es.String(); actual != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, actual)
		}
	}
}

func TestMultiLineBrackets(t *testing.T) {
	stmts := parseBody(t, "var xs = [1,", "        2,", "    3]")
	if got := stmts[0].String(); got != "var xs = [1, 2, 3]" {
		t.Fatalf("expected %q, got %q", "var xs = [1, 2, 3]", got)
	}
}

func TestDeclarations(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		constant bool
	}{
		{"var x = 1", "var x = 1", false},
		{"let y Int = 3", "let y Int = 3", true},
		{"var f Int -> Int -> Bool = g", "var f Int -> Int -> Bool = g", false},
		{"var h () -> Int = g", "var h () -> Int = g", false},
		{`var t (Int, [String]) = (1, ["a"])`, `var t (Int, [String]) = (1, ["a"])`, false},
		{"var d {String: Int} = {}", "var d {String: Int} = {}", false},
		{"var s {Float} = {1.0}", "var s {Float} = {1.0}", false},
		{"var g (Int -> Int) = f", "var g Int -> Int = f", false},
	}

	for i, tt := range tests {
		stmts := parseBody(t, tt.input)
		decl, ok := stmts[0].(*ast.DeclarationStatement)
		if !ok {
			t.Fatalf("tests[%d] - not *ast.DeclarationStatement. got=%T", i, stmts[0])
		}
		if decl.String() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, decl.String())
		}
		if decl.Constant != tt.constant {
			t.Errorf("tests[%d] - constant wrong. expected=%t, got=%t", i, tt.constant, decl.Constant)
		}
	}
}

func TestFunctionTypeSubs(t *testing.T) {
	stmts := parseBody(t, "var f Int -> String -> Bool = g")
	typ := stmts[0].(*ast.DeclarationStatement).Type
	if typ.Name != "Function" || len(typ.Subs) != 3 {
		t.Fatalf("expected a Function type with 3 subs, got %s with %d", typ.Name, len(typ.Subs))
	}
	if typ.Subs[0].Name != "Bool" || typ.Subs[1].Name != "Int" || typ.Subs[2].Name != "String" {
		t.Fatalf("expected subs [Bool Int String], got [%s %s %s]", typ.Subs[0], typ.Subs[1], typ.Subs[2])
	}
}

func TestAssignments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		operator string
	}{
		{"x = 1", "x = 1", ""},
		{"x[0][1] = 9", "x[0][1] = 9", ""},
		{"x += 1", "x += 1", "+"},
		{"x[i] -= 1", "x[i] -= 1", "-"},
		{"x **= 2", "x **= 2", "**"},
		{"x //= 2", "x //= 2", "//"},
		{"x <<= 1", "x <<= 1", "<<"},
		{"x ^= 1", "x ^= 1", "^"},
	}

	for i, tt := range tests {
		stmts := parseBody(t, tt.input)
		if stmts[0].String() != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, stmts[0].String())
		}
		if tt.operator == "" {
			if _, ok := stmts[0].(*ast.AssignStatement); !ok {
				t.Errorf("tests[%d] - not *ast.AssignStatement. got=%T", i, stmts[0])
			}
			continue
		}
		cs, ok := stmts[0].(*ast.CompoundAssignStatement)
		if !ok {
			t.Fatalf("tests[%d] - not *ast.CompoundAssignStatement. got=%T", i, stmts[0])
		}
		if cs.Operator != tt.operator {
			t.Errorf("tests[%d] - operator wrong. expected=%q, got=%q", i, tt.operator, cs.Operator)
		}
	}
}

func TestFunctionDefinition(t *testing.T) {
	input := `
def add(a Int, b Int = 5) Int:
    return a + b

def show(xs [Int]) Void:
    print(xs)

def main():
    pass
`
	program := parse(t, input)
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(program.Statements))
	}

	add := program.Statements[0].(*ast.FunctionDefinition)
	if got := add.String(); got != "def add(a Int, b Int = 5) Int: { return (a + b) }" {
		t.Errorf("unexpected add: %q", got)
	}
	if add.Parameters[1].Default == nil {
		t.Errorf("expected a default for parameter b")
	}

	show := program.Statements[1].(*ast.FunctionDefinition)
	if show.ReturnType != nil {
		t.Errorf("expected Void return type to be nil, got %s", show.ReturnType)
	}
	if show.Parameters[0].Type.String() != "[Int]" {
		t.Errorf("expected parameter type [Int], got %s", show.Parameters[0].Type)
	}
}

func TestControlFlow(t *testing.T) {
	input := `
def main():
    var i = 0
    while i < 10:
        if i == 5:
            break
        elif i == 2:
            continue
        else:
            pass
        i += 1
    for c in "abc":
        print(c, end="")
    return
`
	program := parse(t, input)
	body := program.Statements[0].(*ast.FunctionDefinition).Body.Statements
	if len(body) != 4 {
		t.Fatalf("expected 4 statements in main, got %d", len(body))
	}

	loop, ok := body[1].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("body[1] is not *ast.WhileStatement. got=%T", body[1])
	}
	if len(loop.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements in while body, got %d", len(loop.Body.Statements))
	}
	ifs := loop.Body.Statements[0].(*ast.IfStatement)
	if len(ifs.Elifs) != 1 || ifs.Alternative == nil {
		t.Fatalf("expected one elif and an else, got %d elifs", len(ifs.Elifs))
	}

	forStmt, ok := body[2].(*ast.ForStatement)
	if !ok {
		t.Fatalf("body[2] is not *ast.ForStatement. got=%T", body[2])
	}
	if forStmt.Variable != "c" {
		t.Errorf("expected loop variable c, got %s", forStmt.Variable)
	}

	ret := body[3].(*ast.ReturnStatement)
	if ret.ReturnValue != nil {
		t.Errorf("expected bare return, got %s", ret.ReturnValue)
	}
}

func TestAssertSource(t *testing.T) {
	stmts := parseBody(t, `assert x  ==  1 + len("ab")`)
	as, ok := stmts[0].(*ast.AssertStatement)
	if !ok {
		t.Fatalf("not *ast.AssertStatement. got=%T", stmts[0])
	}
	if as.Source != `x  ==  1 + len("ab")` {
		t.Fatalf("expected source text to be kept verbatim, got %q", as.Source)
	}
}

func TestMatchStatement(t *testing.T) {
	stmts := parseBody(t,
		"match xs:",
		"    case []:",
		"        pass",
		"    case h :: t:",
		"        pass",
		"    case (1, _):",
		"        pass",
		"    case -2:",
		"        pass",
		"    case [a, [b]]:",
		"        pass",
	)
	ms, ok := stmts[0].(*ast.MatchStatement)
	if !ok {
		t.Fatalf("not *ast.MatchStatement. got=%T", stmts[0])
	}

	expected := []string{"[]", "h :: t", "(1, _)", "(-2)", "[a, [b]]"}
	if len(ms.Cases) != len(expected) {
		t.Fatalf("expected %d cases, got %d", len(expected), len(ms.Cases))
	}
	for i, want := range expected {
		if got := ms.Cases[i].Pattern.String(); got != want {
			t.Errorf("cases[%d] - expected=%q, got=%q", i, want, got)
		}
	}

	cons := ms.Cases[1].Pattern.(*ast.ConsPattern)
	if len(cons.Heads) != 1 || cons.Tail.String() != "t" {
		t.Errorf("unexpected cons pattern shape: %d heads, tail %s", len(cons.Heads), cons.Tail)
	}
}

func TestTopLevelDeclarations(t *testing.T) {
	program := parse(t, "let limit = 10\nvar count = 0\n\ndef main():\n    pass\n")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.DeclarationStatement); !ok {
		t.Fatalf("statements[0] is not a declaration. got=%T", program.Statements[0])
	}
}

func TestInteractiveAllowsStatements(t *testing.T) {
	input := "print(1 + 2)\n"
	p := New(lexer.New(input), input)
	p.Interactive = true
	program := p.ParseProgram()
	checkParserErrors(t, p)
	if len(program.Statements) != 1 || program.Statements[0].String() != "print((1 + 2))" {
		t.Fatalf("unexpected program: %q", program.String())
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1\n", "only function definitions and declarations are allowed at the top level"},
		{"def f(x):\n    pass\n", "expected a type"},
		{"def main():\n    1 = 2\n", "cannot assign to 1"},
		{"def main():\n    xs[0](1)\n", "only named functions can be called"},
		{"def main():\n    var = 1\n", "expected next token to be IDENT"},
		{"def main():\n    pass\n      pass\n", "not a multiple of the indent width"},
		{"def f(a Int, a Int):\n    pass\n", "duplicate parameter 'a'"},
		{"def f(a Void):\n    pass\n", "cannot have type Void"},
		{"var x () = 1\n", "empty parentheses are only allowed before '->'"},
		{"def main():\n    def inner():\n        pass\n", "only allowed at the top level"},
		{"def main():\n    var s = \"abc\n", "unterminated string"},
	}

	for i, tt := range tests {
		p := New(lexer.New(tt.input), tt.input)
		p.ParseProgram()
		errors := p.Errors()
		if len(errors) == 0 {
			t.Errorf("tests[%d] - expected an error containing %q, got none", i, tt.expected)
			continue
		}
		if !strings.Contains(errors[0], tt.expected) {
			t.Errorf("tests[%d] - expected error containing %q, got %q", i, tt.expected, errors[0])
		}
	}
}

func TestErrorPosition(t *testing.T) {
	input := "def main():\n    var x = )\n"
	p := New(lexer.New(input), input)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error")
	}
	if !strings.HasPrefix(p.Errors()[0], "[  2:13]") {
		t.Fatalf("expected error at [  2:13], got %q", p.Errors()[0])
	}
	if !strings.Contains(p.ErrorDetails(), "^ unexpected here") {
		t.Fatalf("expected caret in error details, got %q", p.ErrorDetails())
	}
}
