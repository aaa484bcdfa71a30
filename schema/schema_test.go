package schema_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/parser"
	"github.com/shyptr/gqlcore/schema"
)

func buildSchema(t *testing.T, src string) *schema.Schema {
	t.Helper()
	res := parser.Parse(1, src, parser.DefaultOptions())
	require.Empty(t, res.Diagnostics)
	doc := ast.NewDocument(res.Root)
	built := schema.Build(doc.Definitions())
	require.Empty(t, built.Diagnostics, "schema.Build diagnostics: %+v", built.Diagnostics)
	return built.Schema
}

// A schema with no Query root type still builds (seeded with
// every built-in scalar/directive) but has a nil Query.
func TestSchemaWithoutQueryRootStillBuildsWithBuiltins(t *testing.T) {
	sch := buildSchema(t, "type Foo { x: Int }")

	assert.Nil(t, sch.Query)
	foo, ok := sch.Types["Foo"]
	require.True(t, ok)
	assert.Equal(t, schema.ObjectKind, foo.Kind)

	for _, builtin := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		_, ok := sch.Types[builtin]
		assert.True(t, ok, "expected built-in scalar %q to be seeded", builtin)
	}
}

func TestExtensionFieldsCarryProvenance(t *testing.T) {
	sch := buildSchema(t, `
		type Query { a: Int }
		extend type Query { b: Int }
	`)

	q := sch.Types["Query"]
	require.NotNil(t, q)

	a := q.Field("a")
	b := q.Field("b")
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Empty(t, a.Origin.ExtensionID, "base field should carry no extension id")
	assert.NotEmpty(t, b.Origin.ExtensionID, "extended-in field should carry its extension id")

	// pretty.Compare gives a structural diff if the two origins ever
	// collapse to the same (non-)value, which would mean provenance
	// tagging silently stopped distinguishing them.
	if diff := pretty.Compare(a.Origin, b.Origin); diff == "" {
		t.Fatalf("expected base and extended field origins to differ, both rendered as %s", pretty.Sprint(a.Origin))
	}
}

// Building from [def, ext1, ext2] and [def, ext2, ext1] yields the
// same set of types and fields, with extension-sourced fields ordered
// by input order in each case.
func TestExtensionMergeOrderFollowsInput(t *testing.T) {
	base := "type Query { a: Int }\n"
	ext1 := "extend type Query { b: Int }\n"
	ext2 := "extend type Query { c: Int }\n"

	fieldNames := func(src string) []string {
		sch := buildSchema(t, src)
		q := sch.Types["Query"]
		require.NotNil(t, q)
		var names []string
		for _, f := range q.Fields {
			names = append(names, f.Name)
		}
		return names
	}

	assert.Equal(t, []string{"a", "b", "c"}, fieldNames(base+ext1+ext2))
	assert.Equal(t, []string{"a", "c", "b"}, fieldNames(base+ext2+ext1))
}

func TestImplementsInterfaceIsQueryable(t *testing.T) {
	sch := buildSchema(t, `
		interface Node { id: ID! }
		type User implements Node { id: ID! name: String }
	`)

	user := sch.Types["User"]
	require.NotNil(t, user)
	assert.True(t, user.ImplementsInterface("Node"))

	node := sch.Types["Node"]
	require.NotNil(t, node)
	implementers := sch.Implementers("Node")
	require.Len(t, implementers, 1)
	assert.Equal(t, "User", implementers[0].Name)
}
