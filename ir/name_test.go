package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/source"
)

func TestNameEqualityIgnoresSpan(t *testing.T) {
	a := ir.NewName("Foo", source.Span{File: 1, Start: 0, End: 3})
	b := ir.NewName("Foo", source.Span{File: 2, Start: 100, End: 103})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, "Foo", a.String())
}

func TestNameHashDistinguishesText(t *testing.T) {
	a := ir.NewName("Foo", source.Span{})
	b := ir.NewName("Bar", source.Span{})

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}
