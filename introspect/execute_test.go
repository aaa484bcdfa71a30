package introspect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/introspect"
	"github.com/shyptr/gqlcore/parser"
	"github.com/shyptr/gqlcore/schema"
)

func setup(t *testing.T, schemaSrc, querySrc string) (*schema.Schema, *executable.Operation) {
	t.Helper()
	res := parser.Parse(1, schemaSrc, parser.DefaultOptions())
	require.Empty(t, res.Diagnostics)
	built := schema.Build(ast.NewDocument(res.Root).Definitions())
	require.Empty(t, built.Diagnostics)

	qres := parser.Parse(2, querySrc, parser.DefaultOptions())
	require.Empty(t, qres.Diagnostics)
	doc := executable.Build(ast.NewDocument(qres.Root).Definitions(), built.Schema)
	require.Empty(t, doc.Diagnostics)
	require.Len(t, doc.Document.Operations, 1)
	return built.Schema, doc.Document.Operations[0]
}

func TestRootTypenameResolvesToQueryType(t *testing.T) {
	sch, op := setup(t, "type Query { f: Int }", "{ __typename }")

	resp := introspect.Execute(sch, op, nil)
	require.True(t, resp.HasData)
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Query", data["__typename"])
}

func TestSchemaQueryTypeAndTypesResolve(t *testing.T) {
	sch, op := setup(t, "type Query { f: Int }",
		"{ __schema { queryType { name } types { name } } }")

	resp := introspect.Execute(sch, op, nil)
	require.True(t, resp.HasData)
	require.Empty(t, resp.Errors)

	data := resp.Data.(map[string]interface{})
	sc := data["__schema"].(map[string]interface{})
	qt := sc["queryType"].(map[string]interface{})
	assert.Equal(t, "Query", qt["name"])

	names := map[string]bool{}
	for _, raw := range sc["types"].([]interface{}) {
		tm := raw.(map[string]interface{})
		names[tm["name"].(string)] = true
	}
	assert.True(t, names["Query"])
	assert.True(t, names["Int"], "built-in scalars appear in types")
	assert.True(t, names["__Schema"], "introspection types appear in types")
}

func TestTypeByNameResolvesFieldsAndWrapping(t *testing.T) {
	sch, op := setup(t, "type Query { hello: String! }",
		`{ __type(name: "Query") { kind name fields { name type { kind ofType { name } } } } }`)

	resp := introspect.Execute(sch, op, nil)
	require.True(t, resp.HasData)
	require.Empty(t, resp.Errors)

	data := resp.Data.(map[string]interface{})
	tm := data["__type"].(map[string]interface{})
	assert.Equal(t, "OBJECT", tm["kind"])
	assert.Equal(t, "Query", tm["name"])

	fields := tm["fields"].([]interface{})
	require.Len(t, fields, 1)
	hello := fields[0].(map[string]interface{})
	assert.Equal(t, "hello", hello["name"])

	ty := hello["type"].(map[string]interface{})
	assert.Equal(t, "NON_NULL", ty["kind"])
	inner := ty["ofType"].(map[string]interface{})
	assert.Equal(t, "String", inner["name"])
}

func TestUnknownTypeNameResolvesToNull(t *testing.T) {
	sch, op := setup(t, "type Query { f: Int }", `{ __type(name: "Missing") { name } }`)

	resp := introspect.Execute(sch, op, nil)
	require.True(t, resp.HasData)
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.Nil(t, data["__type"])
}

func TestNonQueryOperationIsARequestError(t *testing.T) {
	sch, op := setup(t,
		"type Query { f: Int } type Mutation { m: Int }",
		"mutation { m }")

	resp := introspect.Execute(sch, op, nil)
	assert.False(t, resp.HasData, "request errors carry no data key")
	require.NotEmpty(t, resp.Errors)
}

func TestDeprecatedEnumValueIsReported(t *testing.T) {
	sch, op := setup(t, `
		type Query { e: Color }
		enum Color {
			RED
			BLUE @deprecated(reason: "use RED")
		}
	`, `{ __type(name: "Color") { enumValues { name isDeprecated deprecationReason } } }`)

	resp := introspect.Execute(sch, op, nil)
	require.True(t, resp.HasData)
	require.Empty(t, resp.Errors)

	data := resp.Data.(map[string]interface{})
	tm := data["__type"].(map[string]interface{})
	values := tm["enumValues"].([]interface{})
	require.Len(t, values, 2)

	red := values[0].(map[string]interface{})
	assert.Equal(t, "RED", red["name"])
	assert.Equal(t, false, red["isDeprecated"])

	blue := values[1].(map[string]interface{})
	assert.Equal(t, "BLUE", blue["name"])
	assert.Equal(t, true, blue["isDeprecated"])
	assert.Equal(t, "use RED", blue["deprecationReason"])
}
