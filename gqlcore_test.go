package gqlcore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/source"
)

// Introspection depth: a three-deep fields->type->fields->type->
// fields chain is rejected, a two-deep chain succeeds.
func TestIntrospectionDepthGuard(t *testing.T) {
	fset := source.NewFileSet()
	sch, diags := gqlcore.ParseSchema(fset, "schema.graphql", "type Query { f: Int }")
	require.Empty(t, diags)

	threeDeep := `{
		__type(name: "Query") {
			fields {
				type {
					fields {
						type {
							fields { name }
						}
					}
				}
			}
		}
	}`
	doc, diags := gqlcore.ParseExecutable(fset, sch, "three.graphql", threeDeep)
	require.Empty(t, diags)
	require.Len(t, doc.Operations, 1)

	err := gqlcore.CheckIntrospectionDepth(doc.Operations[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maximum introspection depth exceeded")

	twoDeep := `{
		__type(name: "Query") {
			fields {
				type {
					fields { name }
				}
			}
		}
	}`
	doc2, diags := gqlcore.ParseExecutable(fset, sch, "two.graphql", twoDeep)
	require.Empty(t, diags)
	require.Len(t, doc2.Operations, 1)

	assert.NoError(t, gqlcore.CheckIntrospectionDepth(doc2.Operations[0]))
}

// Variable coercion edge cases.
func TestVariableCoercionEdgeCases(t *testing.T) {
	fset := source.NewFileSet()
	sch, diags := gqlcore.ParseSchema(fset, "schema.graphql", "type Query { f(x: Float!): Int }")
	require.Empty(t, diags)

	doc, diags := gqlcore.ParseExecutable(fset, sch, "op.graphql", "query($x: Float!) { f(x: $x) }")
	require.Empty(t, diags)
	require.Len(t, doc.Operations, 1)
	op := doc.Operations[0]

	t.Run("JSON integer coerces to Float", func(t *testing.T) {
		out, err := gqlcore.CoerceVariables(sch, op, map[string]ir.Value{"x": ir.IntValue(5)})
		require.NoError(t, err)
		assert.Equal(t, ir.FloatValue(5), out["x"])
	})

	t.Run("large precision-losing integer still coerces", func(t *testing.T) {
		out, err := gqlcore.CoerceVariables(sch, op, map[string]ir.Value{"x": ir.IntValue(9007199254740993)})
		require.NoError(t, err)
		assert.Equal(t, float64(9007199254740993), out["x"].Float)
	})

	t.Run("non-finite value is a request error", func(t *testing.T) {
		_, err := gqlcore.CoerceVariables(sch, op, map[string]ir.Value{"x": ir.FloatValue(math.Inf(1))})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value coercion")
	})

	t.Run("NaN value is a request error", func(t *testing.T) {
		_, err := gqlcore.CoerceVariables(sch, op, map[string]ir.Value{"x": ir.FloatValue(math.NaN())})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value coercion")
	})

	t.Run("missing required variable is a request error", func(t *testing.T) {
		_, err := gqlcore.CoerceVariables(sch, op, map[string]ir.Value{})
		require.Error(t, err)
	})
}
