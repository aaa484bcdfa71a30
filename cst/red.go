package cst

import "github.com/shyptr/gqlcore/source"

// Node is the parent-aware ("red") view over an immutable GreenNode:
// it layers on an absolute byte offset and a parent link so callers can
// navigate and compute spans without the green tree itself carrying any
// position or identity information.
type Node struct {
	green  *GreenNode
	parent *Node
	offset int
	file   source.FileID
}

// NewRoot wraps green as the root of a tree attributed to file.
func NewRoot(green *GreenNode, file source.FileID) *Node {
	return &Node{green: green, offset: 0, file: file}
}

func (n *Node) Kind() Kind   { return n.green.Kind }
func (n *Node) Green() *GreenNode { return n.green }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Text() string  { return n.green.Text() }

// Span reports the byte range n covers in its file.
func (n *Node) Span() source.Span {
	return source.Span{File: n.file, Start: uint32(n.offset), End: uint32(n.offset + n.green.Width())}
}

// Token is the red counterpart to GreenToken: it knows its own span.
type Token struct {
	green  *GreenToken
	parent *Node
	offset int
	file   source.FileID
}

func (t *Token) Kind() Kind  { return t.green.Kind }
func (t *Token) Text() string { return t.green.Text }
func (t *Token) Span() source.Span {
	return source.Span{File: t.file, Start: uint32(t.offset), End: uint32(t.offset + len(t.green.Text))}
}
func (t *Token) Parent() *Node { return t.parent }

// Child is a red child: exactly one of Node or Tok is non-nil.
type Child struct {
	Node *Node
	Tok  *Token
}

// Children materializes n's direct children as red wrappers, computing
// each one's absolute offset from n's own offset plus the running width
// of preceding siblings. Constant work per child, linear per call,
// with no caching: CST nodes are typically small and accessors are
// called a bounded number of times per build/validate pass.
func (n *Node) Children() []Child {
	out := make([]Child, 0, len(n.green.Children))
	off := n.offset
	for _, c := range n.green.Children {
		switch c := c.(type) {
		case *GreenToken:
			out = append(out, Child{Tok: &Token{green: c, parent: n, offset: off, file: n.file}})
			off += c.width()
		case *GreenNode:
			out = append(out, Child{Node: &Node{green: c, parent: n, offset: off, file: n.file}})
			off += c.width
		}
	}
	return out
}

// ChildNode returns the first direct child node of the given kind,
// skipping tokens and trivia. Returns nil if absent.
func (n *Node) ChildNode(kind Kind) *Node {
	for _, c := range n.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			return c.Node
		}
	}
	return nil
}

// ChildNodes returns every direct child node of the given kind, in
// document order.
func (n *Node) ChildNodes(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// AnyChildNodes returns every direct child node regardless of kind,
// skipping tokens. Used by accessors over "one of several kinds"
// productions (e.g. a Selection is a Field, FragmentSpread or
// InlineFragment).
func (n *Node) AnyChildNodes() []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// ChildToken returns the first direct child token of the given kind.
func (n *Node) ChildToken(kind Kind) (*Token, bool) {
	for _, c := range n.Children() {
		if c.Tok != nil && c.Tok.Kind() == kind {
			return c.Tok, true
		}
	}
	return nil, false
}

// NonTrivia returns n's children with whitespace/comment/comma tokens
// filtered out, for grammar-directed traversal that should not have to
// know about trivia.
func (n *Node) NonTrivia() []Child {
	children := n.Children()
	out := children[:0:0]
	for _, c := range children {
		if c.Tok != nil {
			if tk, ok := c.Tok.Kind().AsTokenKind(); ok && tk.IsTrivia() {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
