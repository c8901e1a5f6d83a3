// Package nativefuncs supplies a working set of built-in functions,
// modeled on the teacher's native/registry.go name->handler table. It is
// the minimal demonstration registry a driver wires in by default; a
// host embedding the evaluator is free to supply its own builtin.Registry
// instead.
package nativefuncs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/greenbone/nasl-go/internal/builtin"
	"github.com/greenbone/nasl-go/internal/kb"
	"github.com/greenbone/nasl-go/internal/value"
)

// Registry returns the default built-in function table.
func Registry() builtin.MapRegistry {
	return builtin.MapRegistry{
		"display":     display,
		"typeof":      typeOf,
		"strlen":      strlen,
		"substr":      substr,
		"int":         toInt,
		"set_kb_item": setKBItem,
		"get_kb_item": getKBItem,
		"string":      stringCat,
		"make_list":   makeList,
		"keys":        keysOf,
	}
}

func display(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	all := builtin.PositionalAll(reg)
	parts := make([]string, len(all))
	for i, v := range all {
		parts[i] = v.String()
	}
	fmt.Println(strings.Join(parts, ""))
	return value.NullVal(), nil
}

func typeOf(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	v := builtin.Positional(reg, 0)
	switch v.Kind() {
	case value.KindString:
		return value.StrVal("string"), nil
	case value.KindNumber:
		return value.StrVal("int"), nil
	case value.KindBoolean:
		return value.StrVal("bool"), nil
	case value.KindArray:
		return value.StrVal("array"), nil
	case value.KindDict:
		return value.StrVal("dict"), nil
	case value.KindAttackCategory:
		return value.StrVal("category"), nil
	default:
		return value.StrVal("undef"), nil
	}
}

func strlen(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	return value.NumVal(int32(len(builtin.Positional(reg, 0).String()))), nil
}

func substr(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	s := builtin.Positional(reg, 0).String()
	args := builtin.PositionalAll(reg)
	start := int(builtin.Positional(reg, 1).Int())
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	end := len(s)
	if len(args) > 2 {
		end = int(builtin.Positional(reg, 2).Int())
		if end > len(s) {
			end = len(s)
		}
		if end < start {
			end = start
		}
	}
	return value.StrVal(s[start:end]), nil
}

func toInt(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	v := builtin.Positional(reg, 0)
	if v.Kind() == value.KindString {
		n, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 32)
		if err != nil {
			return value.NumVal(0), nil
		}
		return value.NumVal(int32(n)), nil
	}
	return value.NumVal(v.Int()), nil
}

func stringCat(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	var sb strings.Builder
	for _, v := range builtin.PositionalAll(reg) {
		sb.WriteString(v.String())
	}
	return value.StrVal(sb.String()), nil
}

func makeList(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	return value.ArrVal(append([]value.Value(nil), builtin.PositionalAll(reg)...)), nil
}

func keysOf(_ string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	v := builtin.Positional(reg, 0)
	d, ok := v.(value.DictValue)
	if !ok {
		return value.ArrVal(nil), nil
	}
	out := make([]value.Value, 0, len(d.Entries))
	for _, k := range sortedKeys(d.Entries) {
		out = append(out, value.StrVal(k))
	}
	return value.ArrVal(out), nil
}

func sortedKeys(m map[string]value.Value) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// setKBItem/getKBItem are the built-ins DESIGN.md cites as exercising
// the storage sink; script-key scoping of KB entries is the sink
// implementation's business (internal/kb is shared, unscoped, by
// design for this demonstration registry), but the key is threaded
// through to it regardless, per spec.md §4.C, so a scoped sink could
// use it.
func setKBItem(_ string, sink builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	store, ok := sink.(*kb.KB)
	if !ok {
		return value.NullVal(), fmt.Errorf("nativefuncs: set_kb_item requires a knowledge-base sink")
	}
	store.Set(builtin.Named(reg, "name").String(), builtin.Named(reg, "value"))
	return value.NullVal(), nil
}

func getKBItem(_ string, sink builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
	store, ok := sink.(*kb.KB)
	if !ok {
		return value.NullVal(), fmt.Errorf("nativefuncs: get_kb_item requires a knowledge-base sink")
	}
	return store.Get(builtin.Positional(reg, 0).String()), nil
}
