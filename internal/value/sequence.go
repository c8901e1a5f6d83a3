package value

import (
	"fmt"
	"sort"
)

// ArrayValue is a zero-based, integer-indexed sequence. The Elements slice
// is the single source of truth; WithSet returns a new ArrayValue that the
// evaluator rebinds in the owning Frame rather than relying on Go's
// slice-aliasing semantics, so growth (which may reallocate the backing
// array) is never silently lost.
type ArrayValue struct {
	Elements []Value
}

// ArrVal constructs an Array value from an element slice (never nil).
func ArrVal(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return ArrayValue{Elements: elems}
}

func (a ArrayValue) Kind() Kind { return KindArray }

func (a ArrayValue) String() string {
	pairs := make([]string, len(a.Elements))
	for i, v := range a.Elements {
		pairs[i] = fmt.Sprintf("%d: %s", i, v.String())
	}
	return joinPairs(pairs)
}

// Bool: non-empty.
func (a ArrayValue) Bool() bool { return len(a.Elements) > 0 }

// Int: arrays coerce to 1 (truthiness proxy, per spec).
func (a ArrayValue) Int() int32 { return 1 }

func (a ArrayValue) Seq() []Value { return a.Elements }

// Get returns the element at index, or (Null, false) if out of range.
func (a ArrayValue) Get(index int32) (Value, bool) {
	if index < 0 || int(index) >= len(a.Elements) {
		return NullVal(), false
	}
	return a.Elements[index], true
}

// WithSet returns a new ArrayValue with element index set to v, growing the
// slice with Null-filled gaps if index is past the current length.
func (a ArrayValue) WithSet(index int32, v Value) ArrayValue {
	if index < 0 {
		index = 0
	}
	if int(index) >= len(a.Elements) {
		grown := make([]Value, index+1)
		copy(grown, a.Elements)
		for i := len(a.Elements); i < len(grown); i++ {
			grown[i] = NullVal()
		}
		grown[index] = v
		return ArrayValue{Elements: grown}
	}
	next := make([]Value, len(a.Elements))
	copy(next, a.Elements)
	next[index] = v
	return ArrayValue{Elements: next}
}

// DictValue is a string-keyed mapping; insertion order is not observable.
type DictValue struct {
	Entries map[string]Value
}

// DictVal constructs a Dict value from a mapping (never nil).
func DictVal(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return DictValue{Entries: m}
}

func (d DictValue) Kind() Kind { return KindDict }

func (d DictValue) String() string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s: %s", k, d.Entries[k].String())
	}
	return joinPairs(pairs)
}

// Bool: non-empty.
func (d DictValue) Bool() bool { return len(d.Entries) > 0 }

// Int: dicts coerce to 1 (truthiness proxy, per spec).
func (d DictValue) Int() int32 { return 1 }

func (d DictValue) Seq() []Value {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Value, len(keys))
	for i, k := range keys {
		out[i] = d.Entries[k]
	}
	return out
}

// Get returns the value bound to key, or (Null, false) if absent.
func (d DictValue) Get(key string) (Value, bool) {
	v, ok := d.Entries[key]
	return v, ok
}

// WithSet returns a new DictValue with key bound to v.
func (d DictValue) WithSet(key string, v Value) DictValue {
	next := make(map[string]Value, len(d.Entries)+1)
	for k, existing := range d.Entries {
		next[k] = existing
	}
	next[key] = v
	return DictValue{Entries: next}
}
