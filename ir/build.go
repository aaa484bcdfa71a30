package ir

import (
	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/cst"
)

// FromAST lowers an ast.Value view over the CST into an ir.Value.
// Numeric/string literals are decoded from their token text; malformed
// numeric literals (which the lexer already flagged during parsing)
// lower to a zero value rather than panicking, since diagnostics for
// them were already recorded during lexing.
func FromAST(v ast.Value) Value {
	if v.Node == nil {
		return NullValue()
	}
	switch v.Kind() {
	case cst.NullValue:
		return NullValue()
	case cst.BooleanValue:
		return BooleanValue(v.BooleanValue())
	case cst.IntValue:
		n, _ := v.IntValue()
		return IntValue(n)
	case cst.FloatValue:
		f, _ := v.FloatValue()
		return FloatValue(f)
	case cst.StringValue:
		return StringValue(v.StringValue())
	case cst.EnumValue:
		return EnumValue(v.EnumValue())
	case cst.Variable:
		n := v.VariableName()
		return VariableValue(NewName(n.Text(), n.Node.Span()))
	case cst.ListValue:
		items := v.ListValues()
		out := make([]Value, len(items))
		for i, item := range items {
			out[i] = FromAST(item)
		}
		return ListValue(out)
	case cst.ObjectValue:
		fields := v.ObjectFields()
		out := make([]ObjectValueField, len(fields))
		for i, f := range fields {
			name := f.Name()
			out[i] = ObjectValueField{Name: NewName(name.Text(), name.Node.Span()), Value: FromAST(f.Value())}
		}
		return ObjectValue(out)
	default:
		return NullValue()
	}
}

// NameFromAST lowers an ast.Name, attaching its CST span.
func NameFromAST(n ast.Name) Name {
	if n.Node == nil {
		return Name{}
	}
	return NewName(n.Text(), n.Node.Span())
}

// TypeFromAST lowers an ast.Type reference into an ir.Type.
func TypeFromAST(t ast.Type) Type {
	switch {
	case t.IsList():
		return List(TypeFromAST(t.Inner()))
	case t.IsNonNull():
		return NonNull(TypeFromAST(t.Inner()))
	default:
		return Named(t.Name().Text())
	}
}
