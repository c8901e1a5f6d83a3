package value

// AttackCategoryValue is an opaque enumeration supplied by the lexer
// (ACT_GATHER_INFO, ACT_ATTACK, ...). The evaluator never interprets the
// code itself, only carries it.
type AttackCategoryValue struct {
	Code int32
	Name string
}

// AttackVal constructs an AttackCategory value.
func AttackVal(code int32, name string) Value {
	return AttackCategoryValue{Code: code, Name: name}
}

func (a AttackCategoryValue) Kind() Kind     { return KindAttackCategory }
func (a AttackCategoryValue) String() string { return a.Name }
func (a AttackCategoryValue) Bool() bool     { return true }
func (a AttackCategoryValue) Int() int32     { return a.Code }
func (a AttackCategoryValue) Seq() []Value   { return nil }
