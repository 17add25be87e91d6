package conformance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCoreCases(t *testing.T) {
	cases, err := Load(filepath.Join("testdata", "core.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("no cases loaded")
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			if result := Run(c); !result.Passed() {
				t.Errorf("%s", result.Describe())
			}
		})
	}
}

func TestDescribeFailure(t *testing.T) {
	result := Run(Case{
		Name:   "wrong output",
		Source: "def main():\n    print(1)\n",
		Stdout: "2\n",
	})
	if result.Passed() {
		t.Fatalf("expected the case to fail")
	}
	if d := result.Describe(); !strings.Contains(d, `stdout: expected "2\n", got "1\n"`) {
		t.Errorf("unexpected description %q", d)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := "cases:\n  - name: x\n    sourcecode: nope\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown field")
	}
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected an empty file error, got %v", err)
	}
}
