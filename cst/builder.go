package cst

// Builder assembles a GreenNode tree from a flat stream of start-node,
// token and finish-node events. The parser never
// constructs GreenNode/GreenToken values directly; it only calls
// StartNode/Token/FinishNode, which keeps tree-shape bookkeeping
// (matching starts to finishes, collecting children) out of the
// grammar code.
type Builder struct {
	// stack holds one entry per currently-open StartNode: the node kind
	// and the children collected for it so far.
	stack []frame
}

type frame struct {
	kind     Kind
	children []GreenChild
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// StartNode opens a new node of the given kind; subsequent Token and
// StartNode calls become its children until the matching FinishNode.
func (b *Builder) StartNode(kind Kind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// Token appends a leaf token to the node currently open on top of the
// stack. Trivia tokens (whitespace, commas, comments) are appended the
// same way as any other token, attaching them to the closest
// surrounding node so the tree stays lossless.
func (b *Builder) Token(kind Kind, text string) {
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, &GreenToken{Kind: kind, Text: text})
}

// FinishNode closes the most recently opened node, appending it as a
// child of its new parent (or returning it, if it was the root).
func (b *Builder) FinishNode() *GreenNode {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	node := NewGreenNode(top.kind, top.children)
	if len(b.stack) > 0 {
		parent := &b.stack[len(b.stack)-1]
		parent.children = append(parent.children, node)
	}
	return node
}

// Checkpoint marks a position in the currently-open node's children so
// a caller can retroactively wrap everything emitted since the
// checkpoint in a new node; used by recovery to wrap an
// unexpected token in an Error node after the fact, once the parser
// decides recovery is needed rather than before it knows.
type Checkpoint struct {
	depth int
	index int
}

// Checkpoint records the current position within the innermost open
// frame.
func (b *Builder) Checkpoint() Checkpoint {
	top := &b.stack[len(b.stack)-1]
	return Checkpoint{depth: len(b.stack), index: len(top.children)}
}

// WrapSince retroactively starts a node of kind at cp and finishes it
// immediately, absorbing every child emitted in the innermost open
// frame since the checkpoint was taken.
func (b *Builder) WrapSince(cp Checkpoint, kind Kind) {
	top := &b.stack[len(b.stack)-1]
	if cp.depth != len(b.stack) {
		// The tree shape changed (nodes opened/closed) since the
		// checkpoint; nothing sane to wrap, so this is a caller bug.
		panic("cst: WrapSince checkpoint depth mismatch")
	}
	absorbed := append([]GreenChild{}, top.children[cp.index:]...)
	top.children = top.children[:cp.index]
	wrapped := NewGreenNode(kind, absorbed)
	top.children = append(top.children, wrapped)
}
