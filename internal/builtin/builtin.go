// Package builtin defines the narrow interface the evaluator uses to
// dispatch native function calls, decoupled from any particular set of
// built-ins and from any particular storage backend.
//
// Modeled on the teacher's native/registry.go lookup-table pattern: a
// name resolves to a Handler, looked up through a Registry the evaluator
// only ever sees as an interface, never a concrete map.
package builtin

import (
	"github.com/greenbone/nasl-go/internal/register"
	"github.com/greenbone/nasl-go/internal/value"
)

// RegisterView is the read-only lookup surface a Handler receives: the
// register rooted at the current call frame (spec.md §4.C), narrowed to
// "look up a bound value by name" so a Handler has no way to push, pop,
// or otherwise mutate the frame stack it is handed.
type RegisterView interface {
	LookupValue(name string) (value.Value, bool)
}

// Sink is the opaque handle a Handler uses to reach shared storage (the
// knowledge base) without the evaluator needing to know its shape. Its
// only method is the SinkMarker tag: internal/kb supplies the concrete
// implementation and handlers type-assert to the type they actually need.
type Sink interface {
	SinkMarker()
}

// Handler is a native function implementation, matching spec.md §4.C's
// three-argument contract exactly: key identifies the running script (an
// OID or filename), sink is the storage handle, and reg is the register
// rooted at the current call frame - already carrying this call's named
// arguments and _FCT_ANON_ARGS, since the evaluator pushes that frame
// before dispatch for both native and user-defined calls (spec.md §4.E
// step 4; grounded on call.rs's create_root_child running before the
// lookup(name) match, and the native branch being invoked with
// `function(self.key, self.storage, &self.registrat)`).
type Handler func(key string, sink Sink, reg RegisterView) (value.Value, error)

// Registry resolves a built-in function name to its Handler.
type Registry interface {
	Lookup(name string) (Handler, bool)
}

// MapRegistry is the straightforward Registry: a name->Handler table.
type MapRegistry map[string]Handler

func (m MapRegistry) Lookup(name string) (Handler, bool) {
	h, ok := m[name]
	return h, ok
}

// Positional returns the i'th positional argument of the current call,
// read back out of reg's _FCT_ANON_ARGS binding, or Null if absent or
// out of range.
func Positional(reg RegisterView, i int) value.Value {
	all := PositionalAll(reg)
	if i < 0 || i >= len(all) {
		return value.NullVal()
	}
	return all[i]
}

// PositionalAll returns every positional argument of the current call,
// read back out of reg's _FCT_ANON_ARGS binding.
func PositionalAll(reg RegisterView) []value.Value {
	v, ok := reg.LookupValue(register.AnonArgsName)
	if !ok {
		return nil
	}
	return v.Seq()
}

// Named returns the value bound under name in reg - a named call
// argument (e.g. `set_kb_item(name: "x", value: 1)` binds "name" and
// "value") - or Null if no such argument was passed.
func Named(reg RegisterView, name string) value.Value {
	v, ok := reg.LookupValue(name)
	if !ok {
		return value.NullVal()
	}
	return v
}
