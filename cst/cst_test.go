package cst_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/cst"
	"github.com/shyptr/gqlcore/token"
)

// buildSimpleTree assembles the CST a parser would produce for the
// source `{hello}` without going through the parser package, exercising
// the green/red split directly.
func buildSimpleTree() *cst.Node {
	b := cst.NewBuilder()
	b.StartNode(cst.Document)
	b.StartNode(cst.OperationDefinition)
	b.StartNode(cst.SelectionSet)
	b.Token(cst.TokenKind(token.BraceL), "{")
	b.StartNode(cst.Field)
	b.StartNode(cst.Name)
	b.Token(cst.TokenKind(token.Name), "hello")
	b.FinishNode()
	b.FinishNode()
	b.Token(cst.TokenKind(token.BraceR), "}")
	b.FinishNode()
	b.FinishNode()
	green := b.FinishNode()
	return cst.NewRoot(green, 1)
}

func TestGreenRedConcatenationIsLossless(t *testing.T) {
	root := buildSimpleTree()
	assert.Equal(t, "{hello}", root.Text())
}

func TestChildrenReportAbsoluteOffsets(t *testing.T) {
	root := buildSimpleTree()
	op := root.ChildNode(cst.OperationDefinition)
	require.NotNil(t, op)
	ss := op.ChildNode(cst.SelectionSet)
	require.NotNil(t, ss)

	field := ss.ChildNode(cst.Field)
	require.NotNil(t, field)
	// "hello" begins right after the opening brace at offset 1.
	name := field.ChildNode(cst.Name)
	require.NotNil(t, name)
	assert.Equal(t, uint32(1), name.Span().Start)
	assert.Equal(t, uint32(6), name.Span().End)
}

func TestChildNodesCollectsEveryMatchingKind(t *testing.T) {
	b := cst.NewBuilder()
	b.StartNode(cst.Document)
	b.StartNode(cst.ObjectTypeDefinition)
	b.FinishNode()
	b.StartNode(cst.ObjectTypeDefinition)
	b.FinishNode()
	b.StartNode(cst.ScalarTypeDefinition)
	b.FinishNode()
	green := b.FinishNode()
	root := cst.NewRoot(green, 1)

	objs := root.ChildNodes(cst.ObjectTypeDefinition)
	assert.Len(t, objs, 2)

	// go-cmp gives a readable diff if the reported Kind sequence ever
	// drifts from the insertion order AnyChildNodes is documented to
	// preserve.
	var kinds []cst.Kind
	for _, c := range root.AnyChildNodes() {
		kinds = append(kinds, c.Kind())
	}
	want := []cst.Kind{cst.ObjectTypeDefinition, cst.ObjectTypeDefinition, cst.ScalarTypeDefinition}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("child kind order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderWrapSinceRetroactivelyWrapsAnError(t *testing.T) {
	b := cst.NewBuilder()
	b.StartNode(cst.Document)
	cp := b.Checkpoint()
	b.Token(cst.TokenKind(token.Name), "bogus")
	b.WrapSince(cp, cst.Error)
	green := b.FinishNode()
	root := cst.NewRoot(green, 1)

	errNode := root.ChildNode(cst.Error)
	require.NotNil(t, errNode)
	assert.Equal(t, "bogus", errNode.Text())
}
