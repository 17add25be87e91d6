package object

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

const (
	tagNumber byte = iota + 1
	tagBool
	tagString
	tagList
	tagTuple
	tagDict
	tagSet
	tagFunction
)

// Hash computes a structural hash consistent with Equal: values that are
// Equal hash the same. Int and Float hash through their float64 value so
// that 1 and 1.0 land on the same key.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	switch v := v.(type) {
	case *Integer:
		return hashNumber(float64(v.Value))
	case *Float:
		return hashNumber(v.Value)
	case *Boolean:
		h.Write([]byte{tagBool})
		if v.Value {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case *String:
		h.Write([]byte{tagString})
		h.Write([]byte(v.Value))
	case *List:
		h.Write([]byte{tagList})
		for _, el := range v.Elements {
			binary.LittleEndian.PutUint64(buf[:], Hash(el))
			h.Write(buf[:])
		}
	case *Tuple:
		h.Write([]byte{tagTuple})
		for _, el := range v.Elements {
			binary.LittleEndian.PutUint64(buf[:], Hash(el))
			h.Write(buf[:])
		}
	case *Dict:
		// order independent
		var sum uint64
		for _, e := range v.entries {
			sum += Hash(e.Key)*31 + Hash(e.Value)
		}
		h.Write([]byte{tagDict})
		binary.LittleEndian.PutUint64(buf[:], sum)
		h.Write(buf[:])
	case *Set:
		var sum uint64
		for _, el := range v.elements {
			sum += Hash(el)
		}
		h.Write([]byte{tagSet})
		binary.LittleEndian.PutUint64(buf[:], sum)
		h.Write(buf[:])
	case *Function:
		h.Write([]byte{tagFunction})
		h.Write([]byte(v.Name))
	}

	return h.Sum64()
}

func hashNumber(f float64) uint64 {
	if f == 0 {
		f = 0 // -0 and +0 are equal
	}
	h := fnv.New64a()
	var buf [9]byte
	buf[0] = tagNumber
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
	h.Write(buf[:])
	return h.Sum64()
}

// Equal is total structural equality. Numbers compare across Int and Float,
// containers compare element-wise, functions by identity. Values of
// unrelated kinds are simply unequal.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		if ai, ok := a.(*Integer); ok {
			if bi, ok := b.(*Integer); ok {
				return ai.Value == bi.Value
			}
		}
		af, _ := ToFloat(a)
		bf, _ := ToFloat(b)
		return af == bf
	}

	switch a := a.(type) {
	case *Boolean:
		b, ok := b.(*Boolean)
		return ok && a.Value == b.Value
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *List:
		b, ok := b.(*List)
		return ok && elementsEqual(a.Elements, b.Elements)
	case *Tuple:
		b, ok := b.(*Tuple)
		return ok && elementsEqual(a.Elements, b.Elements)
	case *Dict:
		b, ok := b.(*Dict)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, e := range a.entries {
			other, found := b.Get(e.Key)
			if !found || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	case *Set:
		b, ok := b.(*Set)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, el := range a.elements {
			if !b.Has(el) {
				return false
			}
		}
		return true
	case *Function:
		b, ok := b.(*Function)
		return ok && a == b
	}
	return false
}

func elementsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
