package validate

import (
	"fmt"
	"math"

	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
)

// CoerceConst recursively checks that value is assignable to t without
// resolving any Variable: full recursive coercion including
// list-item-lifting and scalar/enum shape checks. A Variable anywhere
// inside value is rejected; const contexts (default values, directive
// arguments inside a definition) never permit them per the GraphQL
// grammar's separate Const productions.
func CoerceConst(sch *schema.Schema, t ir.Type, value ir.Value) error {
	return coerce(sch, t, value, false)
}

// Coerce recursively checks that value (which may legally contain
// Variable references, since it comes from an executable document
// rather than a definition) is assignable to t.
func Coerce(sch *schema.Schema, t ir.Type, value ir.Value) error {
	return coerce(sch, t, value, true)
}

func coerce(sch *schema.Schema, t ir.Type, value ir.Value, allowVariable bool) error {
	if value.Kind == ir.VariableKind {
		if !allowVariable {
			return fmt.Errorf("variable not allowed in this context")
		}
		return nil
	}
	if t.IsNonNull() {
		if value.Kind == ir.NullKind {
			return fmt.Errorf("null not allowed for non-null type %q", t)
		}
		return coerce(sch, t.InnerType(), value, allowVariable)
	}
	if value.Kind == ir.NullKind {
		return nil
	}
	if t.IsList() {
		if value.Kind != ir.ListKind {
			// Single values are lifted into a one-element list.
			return coerce(sch, *t.Of, value, allowVariable)
		}
		for i, item := range value.List {
			if err := coerce(sch, *t.Of, item, allowVariable); err != nil {
				return fmt.Errorf("list item %d: %w", i, err)
			}
		}
		return nil
	}

	target, ok := sch.Types[t.NamedTypeName()]
	if !ok {
		return fmt.Errorf("undefined type %q", t.NamedTypeName())
	}

	switch target.Kind {
	case schema.ScalarKind:
		return coerceScalar(target.Name, value)
	case schema.EnumKind:
		if value.Kind != ir.EnumKind {
			return fmt.Errorf("expected enum value for %q, got %s", target.Name, value)
		}
		if target.EnumValue(value.Str) == nil {
			return fmt.Errorf("%q is not a valid value of enum %q", value.Str, target.Name)
		}
		return nil
	case schema.InputObjectKind:
		if value.Kind != ir.ObjectKind {
			return fmt.Errorf("expected input object value for %q, got %s", target.Name, value)
		}
		seen := map[string]bool{}
		for _, f := range value.Object {
			seen[f.Name.Text] = true
			fieldDef := target.InputField(f.Name.Text)
			if fieldDef == nil {
				return fmt.Errorf("field %q is not defined on input object %q", f.Name.Text, target.Name)
			}
			if err := coerce(sch, fieldDef.Type, f.Value, allowVariable); err != nil {
				return fmt.Errorf("field %q: %w", f.Name.Text, err)
			}
		}
		for _, fieldDef := range target.InputFields {
			if fieldDef.Type.IsNonNull() && fieldDef.DefaultValue == nil && !seen[fieldDef.Name] {
				return fmt.Errorf("missing required field %q on input object %q", fieldDef.Name, target.Name)
			}
		}
		return nil
	default:
		return fmt.Errorf("type %q cannot be used as an input type", target.Name)
	}
}

// coerceScalar checks value's shape against one of the five built-in
// scalars, or accepts any value, lists and objects included, for a
// custom scalar;
// custom scalars have no serializer of their own in this IR, so
// coercion is shape checking, not semantic validation.
func coerceScalar(name string, value ir.Value) error {
	switch name {
	case "Int":
		if value.Kind != ir.IntKind {
			return fmt.Errorf("expected Int, got %s", value)
		}
		if value.Int > 1<<31-1 || value.Int < -(1<<31) {
			return fmt.Errorf("Int value %d out of 32-bit range", value.Int)
		}
	case "Float":
		if value.Kind != ir.FloatKind && value.Kind != ir.IntKind {
			return fmt.Errorf("expected Float, got %s", value)
		}
		if value.Kind == ir.FloatKind && (math.IsInf(value.Float, 0) || math.IsNaN(value.Float)) {
			return fmt.Errorf("value coercion: Float value %s is not finite", value)
		}
	case "String":
		if value.Kind != ir.StringKind {
			return fmt.Errorf("expected String, got %s", value)
		}
	case "Boolean":
		if value.Kind != ir.BooleanKind {
			return fmt.Errorf("expected Boolean, got %s", value)
		}
	case "ID":
		if value.Kind != ir.StringKind && value.Kind != ir.IntKind {
			return fmt.Errorf("expected ID (String or Int), got %s", value)
		}
		if value.Kind == ir.StringKind {
			_ = value.Str // IDs carried as strings need no further shape check
		}
	default:
		if value.Kind == ir.ListKind || value.Kind == ir.ObjectKind {
			return nil
		}
	}
	return nil
}

