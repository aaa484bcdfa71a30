package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlcore/validate"
)

func TestConflictingAliasTargetsAreReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { a: Int b: String }")
	doc := mustBuildExecutable(t, sch, "query { x: a x: b }")

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "field merge conflict")
}

func TestSameFieldDifferingArgumentsIsReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { f(n: Int): Int }")
	doc := mustBuildExecutable(t, sch, "query { f(n: 1) f(n: 2) }")

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "field merge conflict")
}

func TestIdenticalRepeatedSelectionMerges(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { f(n: Int): Int }")
	doc := mustBuildExecutable(t, sch, "query { f(n: 1) f(n: 1) }")

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.NotContains(t, kinds(diags), "field merge conflict")
}

func TestConflictNestedUnderFragmentSpreadIsReported(t *testing.T) {
	sch := mustBuildSchema(t, "type Query { o: O } type O { a: Int b: String }")
	doc := mustBuildExecutable(t, sch, `
		query { o { a: a } ...frag }
		fragment frag on Query { o { a: b } }
	`)

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "field merge conflict")
}

func TestDisjointObjectScopesDoNotConflictOnArguments(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { u: U }
		union U = A | B
		type A { f(n: Int): Int }
		type B { f(n: Int): Int }
	`)
	doc := mustBuildExecutable(t, sch, `
		query { u { ... on A { f(n: 1) } ... on B { f(n: 2) } } }
	`)

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.NotContains(t, kinds(diags), "field merge conflict")
}

func TestIncompatibleLeafShapesAcrossScopesAreReported(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { u: U }
		union U = A | B
		type A { f: Int }
		type B { f: String }
	`)
	doc := mustBuildExecutable(t, sch, `
		query { u { ... on A { f } ... on B { f } } }
	`)

	diags := validate.Executable(sch, doc, validate.DefaultOptions())
	assert.Contains(t, kinds(diags), "field merge conflict")
}
