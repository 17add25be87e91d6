package object

import "bytes"

type DictEntry struct {
	Key   Value
	Value Value
}

// Dict keeps its entries in insertion order; index maps a structural hash to
// the positions of the entries with that hash.
type Dict struct {
	entries []DictEntry
	index   map[uint64][]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[uint64][]int)}
}

func (d *Dict) Kind() Kind { return DICT_OBJ }
func (d *Dict) Inspect() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, e := range d.entries {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(Nested(e.Key))
		out.WriteString(": ")
		out.WriteString(Nested(e.Value))
	}
	out.WriteString("}")
	return out.String()
}

func (d *Dict) Len() int { return len(d.entries) }

func (d *Dict) find(key Value) (int, uint64) {
	h := Hash(key)
	for _, i := range d.index[h] {
		if Equal(d.entries[i].Key, key) {
			return i, h
		}
	}
	return -1, h
}

func (d *Dict) Get(key Value) (Value, bool) {
	i, _ := d.find(key)
	if i < 0 {
		return nil, false
	}
	return d.entries[i].Value, true
}

func (d *Dict) Has(key Value) bool {
	i, _ := d.find(key)
	return i >= 0
}

// Put inserts key or replaces the value of an existing equal key in place.
func (d *Dict) Put(key, value Value) {
	i, h := d.find(key)
	if i >= 0 {
		d.entries[i].Value = value
		return
	}
	d.index[h] = append(d.index[h], len(d.entries))
	d.entries = append(d.entries, DictEntry{Key: key, Value: value})
}

// Entries returns a copy of the entries in insertion order.
func (d *Dict) Entries() []DictEntry {
	return append([]DictEntry(nil), d.entries...)
}

type Set struct {
	elements []Value
	index    map[uint64][]int
}

func NewSet() *Set {
	return &Set{index: make(map[uint64][]int)}
}

func (s *Set) Kind() Kind      { return SET_OBJ }
func (s *Set) Inspect() string { return "{" + joinNested(s.elements) + "}" }

func (s *Set) Len() int { return len(s.elements) }

func (s *Set) Has(v Value) bool {
	for _, i := range s.index[Hash(v)] {
		if Equal(s.elements[i], v) {
			return true
		}
	}
	return false
}

// Add inserts v and reports whether it was not already present.
func (s *Set) Add(v Value) bool {
	h := Hash(v)
	for _, i := range s.index[h] {
		if Equal(s.elements[i], v) {
			return false
		}
	}
	s.index[h] = append(s.index[h], len(s.elements))
	s.elements = append(s.elements, v)
	return true
}

// Elements returns a snapshot of the members.
func (s *Set) Elements() []Value {
	return append([]Value(nil), s.elements...)
}
