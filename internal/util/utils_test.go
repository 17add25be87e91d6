package util

import (
	"strings"
	"testing"
)

func TestGetLineAndColumn(t *testing.T) {
	src := "var x = 1\nprint(x)\n  y"
	tests := []struct {
		pos    int
		line   int
		column int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{10, 2, 1},
		{16, 2, 7},
		{21, 3, 3},
	}

	for i, tt := range tests {
		line, column := GetLineAndColumn(src, tt.pos)
		if line != tt.line || column != tt.column {
			t.Errorf("tests[%d] - expected=%d:%d, got=%d:%d", i, tt.line, tt.column, line, column)
		}
	}
}

func TestGetContextLines(t *testing.T) {
	src := "a = 1\nb = 2\nc = 3\nd = x\ne = 5"
	out := GetContextLines(src, 4, 5, "unknown name")
	lines := strings.Split(out, "\n")

	expected := []string{
		"       2 | b = 2",
		"       3 | c = 3",
		"  >    4 | d = x",
		"               ^ unknown name",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %q", len(expected), len(lines), out)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, want, lines[i])
		}
	}
}

func TestGetContextLinesFirstLine(t *testing.T) {
	out := GetContextLines("\tboom()", 1, 2, "here")
	if !strings.HasPrefix(out, "  >    1 | \tboom()\n") {
		t.Fatalf("unexpected context %q", out)
	}
	if !strings.HasSuffix(out, "\t^ here") {
		t.Errorf("caret should keep the tab for alignment: %q", out)
	}
}
