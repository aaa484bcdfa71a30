package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/parser"
	"github.com/shyptr/gqlcore/schema"
	"github.com/shyptr/gqlcore/validate"
)

func mustBuildSchema(t *testing.T, src string) *schema.Schema {
	t.Helper()
	res := parser.Parse(1, src, parser.DefaultOptions())
	require.Empty(t, res.Diagnostics)
	built := schema.Build(ast.NewDocument(res.Root).Definitions())
	require.Empty(t, built.Diagnostics)
	return built.Schema
}

func mustBuildExecutable(t *testing.T, sch *schema.Schema, src string) *executable.Document {
	t.Helper()
	res := parser.Parse(2, src, parser.DefaultOptions())
	require.Empty(t, res.Diagnostics)
	built := executable.Build(ast.NewDocument(res.Root).Definitions(), sch)
	return built.Document
}

// A self-referencing fragment is rejected as a cycle rather than
// stack-overflowing the validator.
func TestFragmentSelfCycleIsRejected(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o: O } type O { name: String }")
	doc := mustBuildExecutable(t, sch, "query { ...a } fragment a on Query { ...a }")

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	require.NotEmpty(t, diags)

	found := false
	for _, d := range diags {
		if d.Kind == "fragment cycle" {
			found = true
			assert.Contains(t, d.Message, "a")
		}
	}
	assert.True(t, found, "expected a fragment cycle diagnostic, got %+v", diags)
}

func TestUnusedFragmentIsReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o: O } type O { name: String }")
	doc := mustBuildExecutable(t, sch, "query { o { name } } fragment unused on O { name }")

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	found := false
	for _, d := range diags {
		if d.Kind == "unused fragment" {
			found = true
		}
	}
	assert.True(t, found, "expected an unused fragment diagnostic, got %+v", diags)
}

func TestUndefinedVariableIsReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o(id: ID): O } type O { name: String }")
	doc := mustBuildExecutable(t, sch, "query { o(id: $missing) { name } }")

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	require.NotEmpty(t, diags)
}

func TestUndefinedVariableInsideFragmentIsReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o(id: ID): O } type O { name: String }")
	doc := mustBuildExecutable(t, sch, `
		query { ...f }
		fragment f on Query { o(id: $dimensions) { name } }
	`)

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "undefined variable")
}

func TestVariableUsedOnlyInsideFragmentCountsAsUsed(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o(id: ID): O } type O { name: String }")
	doc := mustBuildExecutable(t, sch, `
		query($id: ID) { ...f }
		fragment f on Query { o(id: $id) { name } }
	`)

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.NotContains(t, kinds(diags), "unused variable")
	assert.NotContains(t, kinds(diags), "undefined variable")
}

func TestArgumentMismatchInsideFragmentIsReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { f(x: Int): Int }")
	doc := mustBuildExecutable(t, sch, `
		query { ...g }
		fragment g on Query { f(x: "not an int") }
	`)

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "argument type mismatch")
}

// Validation is deterministic: running it twice over the same document
// produces the same diagnostics in the same order.
func TestValidationIsDeterministic(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o: O } type O { name: String }")
	doc := mustBuildExecutable(t, sch, "query { ...a } fragment a on Query { ...a }")

	first := validate.Executable(sch, doc, validate.DefaultOptions())
	second := validate.Executable(sch, doc, validate.DefaultOptions())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Kind, second[i].Kind)
		assert.Equal(t, first[i].Message, second[i].Message)
	}
}
