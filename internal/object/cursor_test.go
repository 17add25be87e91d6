package object

import "testing"

func drain(t *testing.T, v Value) []string {
	t.Helper()
	c, err := NewCursor(v)
	if err != nil {
		t.Fatalf("NewCursor(%s) failed: %v", v.Kind(), err)
	}
	out := []string{}
	for !c.Done() {
		out = append(out, Nested(c.Next()))
	}
	return out
}

func TestCursor(t *testing.T) {
	set := NewSet()
	set.Add(i64(3))
	set.Add(i64(1))
	dict := NewDict()
	dict.Put(str("a"), i64(1))
	dict.Put(str("b"), i64(2))

	tests := []struct {
		value    Value
		expected []string
	}{
		{str("añb"), []string{`"a"`, `"ñ"`, `"b"`}},
		{str(""), []string{}},
		{lst(i64(1), i64(2)), []string{"1", "2"}},
		{tup(TRUE, FALSE), []string{"True", "False"}},
		{set, []string{"3", "1"}},
		{dict, []string{`("a", 1)`, `("b", 2)`}},
	}

	for i, tt := range tests {
		got := drain(t, tt.value)
		if len(got) != len(tt.expected) {
			t.Fatalf("tests[%d] - expected %d elements, got %d (%v)", i, len(tt.expected), len(got), got)
		}
		for j := range got {
			if got[j] != tt.expected[j] {
				t.Errorf("tests[%d] - element %d expected=%q, got=%q", i, j, tt.expected[j], got[j])
			}
		}
	}
}

func TestCursorIsSinglePass(t *testing.T) {
	c, _ := NewCursor(lst(i64(1)))
	c.Next()
	if !c.Done() {
		t.Fatalf("cursor should be exhausted")
	}
}

func TestCursorSetSnapshot(t *testing.T) {
	set := NewSet()
	set.Add(i64(1))
	c, _ := NewCursor(set)
	set.Add(i64(2))

	count := 0
	for !c.Done() {
		c.Next()
		count++
	}
	if count != 1 {
		t.Fatalf("expected the cursor to see 1 element, saw %d", count)
	}
}

func TestCursorUnsupported(t *testing.T) {
	for i, v := range []Value{i64(1), f64(1), TRUE, &Function{Name: "f"}} {
		if _, err := NewCursor(v); !IsKind(err, UnsupportedIteration) {
			t.Errorf("tests[%d] - expected UnsupportedIteration for %s, got %v", i, v.Kind(), err)
		}
	}
}
