package object

// Cursor is a single-pass iterator over the elements of a value. It is not
// restartable: build a new one with NewCursor to iterate again.
type Cursor struct {
	elements []Value
	pos      int
}

// NewCursor iterates a String by character, a List or Tuple by position, a
// Set over a snapshot of its members and a Dict as (key, value) Tuples.
func NewCursor(v Value) (*Cursor, error) {
	switch v := v.(type) {
	case *String:
		runes := []rune(v.Value)
		elements := make([]Value, len(runes))
		for i, r := range runes {
			elements[i] = &String{Value: string(r)}
		}
		return &Cursor{elements: elements}, nil
	case *List:
		return &Cursor{elements: v.Elements}, nil
	case *Tuple:
		return &Cursor{elements: v.Elements}, nil
	case *Set:
		return &Cursor{elements: v.Elements()}, nil
	case *Dict:
		entries := v.Entries()
		elements := make([]Value, len(entries))
		for i, e := range entries {
			elements[i] = &Tuple{Elements: []Value{e.Key, e.Value}}
		}
		return &Cursor{elements: elements}, nil
	}
	return nil, NewError(UnsupportedIteration, "cannot iterate over %s", v.Kind())
}

func (c *Cursor) Done() bool {
	return c.pos >= len(c.elements)
}

// Next returns the next element. It must not be called once Done is true.
func (c *Cursor) Next() Value {
	v := c.elements[c.pos]
	c.pos++
	return v
}
