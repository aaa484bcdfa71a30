package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/cst"
	"github.com/shyptr/gqlcore/parser"
)

// structurallyEqual compares two nodes' kind/token shape, ignoring
// spans. This package has no standalone encoder, so "serialize" is the
// CST's own Text(): parsing it back must reproduce a tree with the
// same shape as the one that produced it.
func structurallyEqual(t *testing.T, a, b *cst.Node) bool {
	t.Helper()
	if a.Kind() != b.Kind() {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		switch {
		case ac[i].Tok != nil && bc[i].Tok != nil:
			if ac[i].Tok.Kind() != bc[i].Tok.Kind() || ac[i].Tok.Text() != bc[i].Tok.Text() {
				return false
			}
		case ac[i].Node != nil && bc[i].Node != nil:
			if !structurallyEqual(t, ac[i].Node, bc[i].Node) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func TestRoundTripReparsesToStructurallyEqualTree(t *testing.T) {
	inputs := []string{
		"type Query {\n  hello: String!\n}\n",
		`query Greet($name: String = "world") { hello(name: $name) { ... on Greeting @skip(if: true) { text } } }`,
		"interface Node { id: ID! } type User implements Node { id: ID! name: String }",
		"enum Color { RED GREEN BLUE }",
		`input Filter { name: String = "x" tags: [String!] }`,
	}

	for _, src := range inputs {
		res1 := parser.Parse(1, src, parser.DefaultOptions())
		require.Empty(t, res1.Diagnostics, "source: %s", src)

		serialized := res1.Root.Text()
		assert.Equal(t, src, serialized)

		res2 := parser.Parse(2, serialized, parser.DefaultOptions())
		require.Empty(t, res2.Diagnostics, "reparsed source: %s", serialized)

		assert.True(t, structurallyEqual(t, res1.Root, res2.Root), "round trip changed tree shape for: %s", src)
	}
}
