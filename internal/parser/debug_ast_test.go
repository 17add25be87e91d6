package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteASTToJSON(t *testing.T) {
	input := `var total = 0

def main():
    for x in [1 .. 3]:
        if x > 1:
            total += x
    assert total == 5
    return
`
	program := parse(t, input)
	path := filepath.Join(t.TempDir(), "ast.json")
	if err := WriteASTToJSON(program, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if tree["0.type"] != "Program" {
		t.Fatalf("unexpected root %v", tree["0.type"])
	}

	statements := tree["1.statements"].([]interface{})
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(statements))
	}
	def := statements[1].(map[string]interface{})
	if def["0.type"] != "FunctionDefinition" || def["2.name"] != "main" || def["4.returns"] != "Void" {
		t.Fatalf("unexpected function node %v", def)
	}
}

func TestWalkASTLeafNames(t *testing.T) {
	stmts := parseBody(t, "pass", "break")
	for i, expected := range []string{"PassStatement", "BreakStatement"} {
		got := WalkAST(stmts[i]).(node)["0.type"]
		if got != expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, expected, got)
		}
	}
}
