// Package cst implements a lossless, span-covering concrete syntax
// tree: immutable "green" nodes holding the tree shape and token text,
// plus parent-aware "red" wrappers computed on demand for navigation.
//
// Every byte of input becomes either a GreenToken or is folded into an
// ancestor's child list as trivia; concatenating the text of every
// token in a tree reproduces its source exactly.
package cst

// GreenToken is an immutable leaf: a kind and its exact source text.
type GreenToken struct {
	Kind Kind
	Text string
}

func (t *GreenToken) width() int { return len(t.Text) }

// GreenChild is either a *GreenToken or a *GreenNode. Using `any` here
// mirrors the red/green split of a rowan-style tree without needing a
// discriminated wrapper type for every traversal.
type GreenChild = any

// GreenNode is an immutable interior node: a kind tag and an ordered
// list of children (tokens or nested nodes), covering the contiguous
// byte range implied by concatenating its children's text.
type GreenNode struct {
	Kind     Kind
	Children []GreenChild
	width    int
}

// NewGreenNode builds a node from already-finished children, computing
// and caching its width once.
func NewGreenNode(kind Kind, children []GreenChild) *GreenNode {
	n := &GreenNode{Kind: kind, Children: children}
	for _, c := range children {
		switch c := c.(type) {
		case *GreenToken:
			n.width += c.width()
		case *GreenNode:
			n.width += c.width
		}
	}
	return n
}

func (n *GreenNode) Width() int { return n.width }

// Text reconstructs the exact source text covered by n, by
// concatenating every descendant token's text in order. Used by the
// lossless-parse property test and by diagnostics that need to quote a
// node's source.
func (n *GreenNode) Text() string {
	var buf []byte
	n.appendText(&buf)
	return string(buf)
}

func (n *GreenNode) appendText(buf *[]byte) {
	for _, c := range n.Children {
		switch c := c.(type) {
		case *GreenToken:
			*buf = append(*buf, c.Text...)
		case *GreenNode:
			c.appendText(buf)
		}
	}
}
