package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/parser"
	"github.com/shyptr/gqlcore/schema"
	"github.com/shyptr/gqlcore/validate"
)

func buildForValidation(t *testing.T, src string) *schema.Schema {
	t.Helper()
	res := parser.Parse(1, src, parser.DefaultOptions())
	require.Empty(t, res.Diagnostics)
	built := schema.Build(ast.NewDocument(res.Root).Definitions())
	return built.Schema
}

func kinds(diags []diagnostic.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Kind
	}
	return out
}

// A schema without a Query root builds but fails validation.
func TestMissingQueryRootIsReported(t *testing.T) {
	sch := buildForValidation(t, "type Foo { x: Int }")

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "missing Query root")
}

func TestNonNullInputObjectCycleIsReported(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { f(in: A): Int }
		input A { b: B! }
		input B { a: A! }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "input object cycle")
}

func TestNullableInputObjectCycleIsAllowed(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { f(in: A): Int }
		input A { b: B }
		input B { a: A }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.NotContains(t, kinds(diags), "input object cycle")
}

func TestOutputTypeInInputPositionIsReported(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { f(in: Obj): Int }
		type Obj { x: Int }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "wrong type position")
}

func TestInputTypeInOutputPositionIsReported(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { f: In }
		input In { x: Int }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "wrong type position")
}

func TestMissingInterfaceFieldIsReported(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { n: Node }
		interface Node { id: ID! }
		type User implements Node { name: String }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "missing interface field")
}

func TestCovariantInterfaceFieldTypeIsAccepted(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { n: Node }
		interface Node { id: ID }
		type User implements Node { id: ID! }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.NotContains(t, kinds(diags), "incompatible field type")
}

func TestDuplicateFieldAcrossExtensionIsReported(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { a: Int }
		extend type Query { a: Int }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "duplicate field")
}

func TestMistypedDefaultValueIsReported(t *testing.T) {
	sch := buildForValidation(t, `
		type Query { f(x: Int = "nope"): Int }
	`)

	diags := validate.Schema(sch, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "default value mistyped")
}
