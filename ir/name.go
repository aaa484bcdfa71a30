// Package ir holds the name-resolved, CST-independent intermediate
// representation: Name, Type references, and Value literals shared
// between the schema and executable builders. Unlike package ast, ir
// values do not keep a pointer back into the source tree; they are the
// durable, structurally-comparable shapes that survive after a CST has
// been built and builder-checked once.
package ir

import (
	"hash/fnv"

	"github.com/shyptr/gqlcore/source"
)

// Name is an interned GraphQL name: equality and hashing both ignore
// the Span.
type Name struct {
	Text string
	Span source.Span
}

func NewName(text string, span source.Span) Name { return Name{Text: text, Span: span} }

// Equal compares two Names by text alone.
func (n Name) Equal(other Name) bool { return n.Text == other.Text }

// Hash returns the FNV-1a hash of n's text.
func (n Name) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(n.Text))
	return h.Sum64()
}

func (n Name) String() string { return n.Text }
