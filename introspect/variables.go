package introspect

import (
	"fmt"

	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
	"github.com/shyptr/gqlcore/validate"
)

// CoerceVariables converts a name->JSON-shaped-value mapping into
// name->ir.Value, validating each against its declared variable type
// and applying declared defaults for omitted variables. Values are expected pre-lowered to ir.Value by the
// caller (typically via ir.FromAST applied to a parsed JSON literal, or
// directly constructed from a decoded JSON document); this function
// does not itself parse JSON text.
func CoerceVariables(sch *schema.Schema, op *executable.Operation, values map[string]ir.Value) (map[string]ir.Value, error) {
	out := make(map[string]ir.Value, len(op.VariableDefinitions))
	for _, vd := range op.VariableDefinitions {
		v, ok := values[vd.Name.Text]
		if !ok {
			if vd.DefaultValue != nil {
				out[vd.Name.Text] = *vd.DefaultValue
				continue
			}
			if vd.Type.IsNonNull() {
				return nil, fmt.Errorf("missing required variable $%s", vd.Name.Text)
			}
			out[vd.Name.Text] = ir.NullValue()
			continue
		}
		if err := validate.Coerce(sch, vd.Type, v); err != nil {
			return nil, fmt.Errorf("variable $%s: %w", vd.Name.Text, err)
		}
		// An integer supplied for a Float variable is stored as a Float.
		named := vd.Type
		if named.IsNonNull() {
			named = named.InnerType()
		}
		if v.Kind == ir.IntKind && named.IsNamed() && named.Named == "Float" {
			v = ir.FloatValue(float64(v.Int))
		}
		out[vd.Name.Text] = v
	}
	return out, nil
}
