// Package value defines the runtime value model for the NASL evaluator.
//
// All data produced by evaluation is represented as an implementation of
// the Value interface. Each value type implements the interface directly
// rather than going through a central type switch, mirroring the teacher
// package's per-variant dispatch: coercion is a property of the variant,
// not of the caller.
//
// Value variants:
//   - None: absence/default (NullVal)
//   - String: UTF-8 text (StrVal)
//   - Number: signed 32-bit integer (NumVal)
//   - Boolean: true/false (BoolVal)
//   - Array: zero-based integer-indexed sequence (ArrVal)
//   - Dict: string-keyed mapping (DictVal)
//   - AttackCategory: opaque enumeration supplied by the lexer (AttackVal)
//   - Return/Break/Continue/Exit: control sentinels, never stored inside
//     an Array or Dict
//
// The constructor functions are the usual way to build a Value. The
// variants with exported fields (ArrayValue, DictValue, AttackCategoryValue,
// ReturnValue, ExitValue) can also be built as struct literals.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindDict
	KindAttackCategory
	KindReturn
	KindBreak
	KindContinue
	KindExit
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindAttackCategory:
		return "attack_category"
	case KindReturn:
		return "return"
	case KindBreak:
		return "break"
	case KindContinue:
		return "continue"
	case KindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// IsControl reports whether the kind is a control-flow sentinel.
func (k Kind) IsControl() bool {
	switch k {
	case KindReturn, KindBreak, KindContinue, KindExit:
		return true
	default:
		return false
	}
}

// Value is the sum type produced by evaluating a statement.
//
// Bool, Int, String and Seq implement the total coercions of spec §4.A;
// every non-control variant (and Return, by unwrapping) answers all four.
type Value interface {
	Kind() Kind
	String() string
	Bool() bool
	Int() int32
	Seq() []Value
}

// escapeUnquoted applies the NASL unquoted-string escape substitutions:
// \n \\ \" \' \r \t. It is a single left-to-right pass, so "\\n" yields
// a backslash followed by 'n', not a newline.
func escapeUnquoted(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			switch raw[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\'':
				b.WriteByte('\'')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapeUnquoted is exported for the evaluator, which applies these
// substitutions when it evaluates an unquoted string literal.
func EscapeUnquoted(raw string) string { return escapeUnquoted(raw) }

func joinPairs(pairs []string) string {
	return strings.Join(pairs, ",")
}

func formatInt(n int32) string {
	return strconv.FormatInt(int64(n), 10)
}
