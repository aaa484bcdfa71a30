package ir

import "fmt"

// ValueKind tags the variant of a Value, mirroring the GraphQL Value
// grammar. One tagged struct rather than a hierarchy of per-kind value
// types, so schema/executable builders and package validate can
// pattern-match without type assertions.
type ValueKind int

const (
	NullKind ValueKind = iota
	BooleanKind
	IntKind
	FloatKind
	StringKind
	EnumKind
	VariableKind
	ListKind
	ObjectKind
)

// ObjectValueField is one `name: value` entry of an Object value.
type ObjectValueField struct {
	Name  Name
	Value Value
}

// Value is the resolved shape of a GraphQL input value: a literal
// scalar/enum, a variable reference, or a List/Object aggregate of
// further Values. Unlike ast.Value it carries Go-native payloads
// (bool, int64, float64, string) instead of raw token text.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Int     int64
	Float   float64
	Str     string // String and Enum values
	VarName Name
	List    []Value
	Object  []ObjectValueField
}

func NullValue() Value           { return Value{Kind: NullKind} }
func BooleanValue(b bool) Value  { return Value{Kind: BooleanKind, Bool: b} }
func IntValue(i int64) Value     { return Value{Kind: IntKind, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: FloatKind, Float: f} }
func StringValue(s string) Value { return Value{Kind: StringKind, Str: s} }
func EnumValue(s string) Value   { return Value{Kind: EnumKind, Str: s} }
func VariableValue(n Name) Value { return Value{Kind: VariableKind, VarName: n} }
func ListValue(items []Value) Value {
	return Value{Kind: ListKind, List: items}
}
func ObjectValue(fields []ObjectValueField) Value {
	return Value{Kind: ObjectKind, Object: fields}
}

// ContainsVariable reports whether v or any value nested inside it is a
// Variable reference; used to decide whether a default value or
// argument can be evaluated at validation time or must wait for
// variable coercion.
func (v Value) ContainsVariable() bool {
	switch v.Kind {
	case VariableKind:
		return true
	case ListKind:
		for _, item := range v.List {
			if item.ContainsVariable() {
				return true
			}
		}
	case ObjectKind:
		for _, f := range v.Object {
			if f.Value.ContainsVariable() {
				return true
			}
		}
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case NullKind:
		return "null"
	case BooleanKind:
		return fmt.Sprintf("%t", v.Bool)
	case IntKind:
		return fmt.Sprintf("%d", v.Int)
	case FloatKind:
		return fmt.Sprintf("%g", v.Float)
	case StringKind:
		return fmt.Sprintf("%q", v.Str)
	case EnumKind:
		return v.Str
	case VariableKind:
		return "$" + v.VarName.Text
	case ListKind:
		s := "["
		for i, item := range v.List {
			if i > 0 {
				s += ", "
			}
			s += item.String()
		}
		return s + "]"
	case ObjectKind:
		s := "{"
		for i, f := range v.Object {
			if i > 0 {
				s += ", "
			}
			s += f.Name.Text + ": " + f.Value.String()
		}
		return s + "}"
	default:
		return "<invalid>"
	}
}
