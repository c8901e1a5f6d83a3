package value

import "testing"

func TestBoolCoercion(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"empty string", StrVal(""), false},
		{"string zero", StrVal("0"), false},
		{"string other", StrVal("00"), true},
		{"nonempty string", StrVal("hi"), true},
		{"number zero", NumVal(0), false},
		{"number nonzero", NumVal(-3), true},
		{"true", BoolVal(true), true},
		{"false", BoolVal(false), false},
		{"null", NullVal(), false},
		{"empty array", ArrVal(nil), false},
		{"nonempty array", ArrVal([]Value{NumVal(1)}), true},
		{"empty dict", DictVal(nil), false},
		{"nonempty dict", DictVal(map[string]Value{"a": NumVal(1)}), true},
		{"attack category", AttackVal(4, "ACT_ATTACK"), true},
		{"break", BreakVal(), false},
		{"continue", ContinueVal(), false},
		{"exit zero", ExitVal(0), false},
		{"exit nonzero", ExitVal(7), true},
		{"return wraps inner", RetVal(NumVal(0)), false},
		{"return wraps inner truthy", RetVal(StrVal("x")), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Bool(); got != c.want {
				t.Errorf("Bool() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIntCoercion(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want int32
	}{
		{"number", NumVal(42), 42},
		{"negative number", NumVal(-5), -5},
		{"bool true", BoolVal(true), 1},
		{"bool false", BoolVal(false), 0},
		{"string is truthiness proxy", StrVal("anything"), 1},
		{"array is truthiness proxy", ArrVal([]Value{NumVal(9)}), 1},
		{"dict is truthiness proxy", DictVal(map[string]Value{"a": NumVal(1)}), 1},
		{"null", NullVal(), 0},
		{"attack category ordinal", AttackVal(3, "ACT_GATHER_INFO"), 3},
		{"exit", ExitVal(9), 9},
		{"return unwraps", RetVal(NumVal(11)), 11},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Int(); got != c.want {
				t.Errorf("Int() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestIntRoundTrip(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 2147483647, -2147483648, 12345} {
		if got := NumVal(n).Int(); got != n {
			t.Errorf("round trip failed: NumVal(%d).Int() = %d", n, got)
		}
	}
}

func TestStringCoercion(t *testing.T) {
	if got := NullVal().String(); got != "\x00" {
		t.Errorf("NullVal().String() = %q, want NUL", got)
	}
	if got := NumVal(7).String(); got != "7" {
		t.Errorf("NumVal(7).String() = %q", got)
	}
	if got := BoolVal(true).String(); got != "true" {
		t.Errorf("BoolVal(true).String() = %q", got)
	}
	if got := RetVal(NumVal(3)).String(); got != "return(3)" {
		t.Errorf("Return(3).String() = %q", got)
	}
	if got := ExitVal(2).String(); got != "exit(2)" {
		t.Errorf("Exit(2).String() = %q", got)
	}
	if got := BreakVal().String(); got != "" {
		t.Errorf("Break().String() = %q, want empty", got)
	}
	if got := ContinueVal().String(); got != "" {
		t.Errorf("Continue().String() = %q, want empty", got)
	}

	arr := ArrVal([]Value{NumVal(1), StrVal("x")})
	if got := arr.String(); got != "0: 1,1: x" {
		t.Errorf("Array.String() = %q", got)
	}

	dict := DictVal(map[string]Value{"b": NumVal(2), "a": NumVal(1)})
	if got := dict.String(); got != "a: 1,b: 2" {
		t.Errorf("Dict.String() = %q", got)
	}
}

func TestSequenceCoercion(t *testing.T) {
	arr := ArrVal([]Value{NumVal(1), NumVal(2)})
	if got := arr.Seq(); len(got) != 2 {
		t.Fatalf("Array.Seq() length = %d, want 2", len(got))
	}

	dict := DictVal(map[string]Value{"a": NumVal(1), "b": NumVal(2)})
	if got := dict.Seq(); len(got) != 2 {
		t.Fatalf("Dict.Seq() length = %d, want 2", len(got))
	}

	str := StrVal("ab")
	seq := str.Seq()
	if len(seq) != 2 || seq[0].String() != "a" || seq[1].String() != "b" {
		t.Errorf("String.Seq() = %v, want [a b]", seq)
	}

	if got := NumVal(5).Seq(); len(got) != 1 {
		t.Errorf("Number.Seq() length = %d, want 1 (singleton)", len(got))
	}

	if got := NullVal().Seq(); got != nil {
		t.Errorf("Null.Seq() = %v, want nil (empty)", got)
	}
}

func TestUnquotedEscapes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`a\nb`, "a\nb"},
		{`a\\b`, `a\b`},
		{`a\"b`, `a"b`},
		{`a\'b`, "a'b"},
		{`a\rb`, "a\rb"},
		{`a\tb`, "a\tb"},
		{`a\\nb`, `a\nb`},
	}
	for _, c := range cases {
		if got := EscapeUnquoted(c.raw); got != c.want {
			t.Errorf("EscapeUnquoted(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestArrayWithSetGrows(t *testing.T) {
	a := ArrayValue{}
	a = a.WithSet(2, NumVal(9))
	if len(a.Elements) != 3 {
		t.Fatalf("expected length 3, got %d", len(a.Elements))
	}
	if a.Elements[0].Kind() != KindNone || a.Elements[1].Kind() != KindNone {
		t.Errorf("expected gap-filled Null elements")
	}
	if a.Elements[2].Int() != 9 {
		t.Errorf("expected set element to be 9")
	}
}

func TestDictWithSetImmutable(t *testing.T) {
	d := DictValue{Entries: map[string]Value{"a": NumVal(1)}}
	d2 := d.WithSet("b", NumVal(2))
	if _, ok := d.Get("b"); ok {
		t.Errorf("original dict mutated by WithSet")
	}
	if v, ok := d2.Get("b"); !ok || v.Int() != 2 {
		t.Errorf("new dict missing set key")
	}
}
