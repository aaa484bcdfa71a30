package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/cst"
	"github.com/shyptr/gqlcore/parser"
)

// Lossless lex of a whitespace-heavy schema.
func TestLosslessParseWhitespaceHeavySchema(t *testing.T) {
	src := "type Query {\n  hello: String!\n}\n"
	res := parser.Parse(1, src, parser.DefaultOptions())

	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, src, res.Root.Text(), "concatenating every token's text must reproduce the input exactly")

	doc := ast.NewDocument(res.Root)
	defs := doc.Definitions()
	require.Len(t, defs, 1)

	obj, ok := defs[0].AsObjectType()
	require.True(t, ok)
	assert.Equal(t, "Query", obj.Name().Text())

	fields := obj.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "hello", fields[0].Name().Text())

	ty := fields[0].Type()
	require.True(t, ty.IsNonNull())
	assert.Equal(t, "String", ty.Inner().Name().Text())
}

// Parser recovery on a truncated trailing definition.
func TestParserRecoversFromTruncatedDefinition(t *testing.T) {
	src := "type A { a: B } type"
	res := parser.Parse(1, src, parser.DefaultOptions())

	assert.Equal(t, src, res.Root.Text())
	require.NotEmpty(t, res.Diagnostics)

	doc := ast.NewDocument(res.Root)
	defs := doc.Definitions()
	require.Len(t, defs, 2)

	_, ok := defs[0].AsObjectType()
	assert.True(t, ok, "first definition should still parse completely")

	assert.True(t, defs[1].Kind() == cst.Error || defs[1].Kind() == cst.ObjectTypeDefinition)
}

// Parse never panics and the tree always spans the whole input, even
// for garbage input.
func TestParseTotalityOnGarbageInput(t *testing.T) {
	inputs := []string{
		"",
		"{{{{{",
		"type",
		"\"unterminated",
		"1.2.3",
		"extend unknown",
		"query { a } query { b }",
	}
	for _, src := range inputs {
		res := parser.Parse(1, src, parser.DefaultOptions())
		assert.Equal(t, src, res.Root.Text(), "source %q", src)
	}
}

// A recursion-limit violation yields a diagnostic and still returns a
// usable tree.
func TestRecursionLimitReported(t *testing.T) {
	src := "query {"
	for i := 0; i < 50; i++ {
		src += " a {"
	}
	for i := 0; i < 50; i++ {
		src += " } "
	}
	src += "}"

	res := parser.Parse(1, src, parser.Options{RecursionLimit: 5, TokenLimit: 0})
	require.NotEmpty(t, res.Diagnostics)

	found := false
	for _, d := range res.Diagnostics {
		if strings.Contains(d.Message, "recursion limit") {
			found = true
		}
	}
	assert.True(t, found, "expected a recursion limit diagnostic, got %+v", res.Diagnostics)
}

// A token limit bounds the number of non-trivia tokens the returned
// CST contains.
func TestTokenLimitBoundsTokenCount(t *testing.T) {
	src := "query { a b c d e f g h }"
	res := parser.Parse(1, src, parser.Options{RecursionLimit: 500, TokenLimit: 3})

	nonTrivia := 0
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		for _, c := range n.Children() {
			if c.Tok != nil {
				if tk, ok := c.Tok.Kind().AsTokenKind(); ok && !tk.IsTrivia() {
					nonTrivia++
				}
			}
			if c.Node != nil {
				walk(c.Node)
			}
		}
	}
	walk(res.Root)
	assert.LessOrEqual(t, nonTrivia, 3)
}

func TestShorthandQueryIsSoleDefinition(t *testing.T) {
	res := parser.Parse(1, "{ hello }", parser.DefaultOptions())
	assert.Empty(t, res.Diagnostics)

	doc := ast.NewDocument(res.Root)
	defs := doc.Definitions()
	require.Len(t, defs, 1)
	op, ok := defs[0].AsOperation()
	require.True(t, ok)
	_, hasName := op.Name()
	assert.False(t, hasName)
}
