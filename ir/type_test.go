package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlcore/ir"
)

func TestTypeStringRoundTrip(t *testing.T) {
	cases := map[string]ir.Type{
		"String":    ir.Named("String"),
		"[String]":  ir.List(ir.Named("String")),
		"String!":   ir.NonNull(ir.Named("String")),
		"[String!]": ir.List(ir.NonNull(ir.Named("String"))),
		"[String]!": ir.NonNull(ir.List(ir.Named("String"))),
	}
	for want, typ := range cases {
		assert.Equal(t, want, typ.String())
	}
}

func TestTypeInnerTypeStripsOneNonNull(t *testing.T) {
	assert.Equal(t, ir.Named("ID"), ir.NonNull(ir.Named("ID")).InnerType())
	assert.Equal(t, ir.Named("ID"), ir.Named("ID").InnerType())
}

func TestTypeNamedTypeNameWalksWrappers(t *testing.T) {
	typ := ir.NonNull(ir.List(ir.NonNull(ir.Named("Droid"))))
	assert.Equal(t, "Droid", typ.NamedTypeName())
}

func TestTypeIsSubTypeOf(t *testing.T) {
	str := ir.Named("String")
	nonNullStr := ir.NonNull(str)
	listStr := ir.List(str)
	listNonNullStr := ir.List(nonNullStr)

	assert.True(t, str.IsSubTypeOf(str))
	assert.True(t, nonNullStr.IsSubTypeOf(str), "NonNull satisfies its inner type")
	assert.False(t, str.IsSubTypeOf(nonNullStr), "nullable cannot satisfy NonNull")
	assert.True(t, listNonNullStr.IsSubTypeOf(listStr), "List of NonNull satisfies List")
	assert.False(t, listStr.IsSubTypeOf(listNonNullStr))
	assert.False(t, str.IsSubTypeOf(ir.Named("Int")))
}
