// Package cst implements the CST Layer: a language-tagged view over a
// parsed tree that every other layer (pattern, matcher, rewriter) walks
// through the same Node abstraction, whether the tree came from real
// target source or from a pattern string.
package cst

import "github.com/oxhq/sgrep/source"

// Kind is the closed sum type from spec.md §3: a node is either an
// ordinary syntax node tagged by its grammar kind, or one of the three
// pattern-only token shapes. Normal CSTs parsed from target source never
// produce anything but KindNormal; pattern trees may produce all four.
type Kind int

const (
	KindNormal Kind = iota
	KindMetavariable
	KindEllipsisMetavariable
	KindEllipsis
)

func (k Kind) String() string {
	switch k {
	case KindMetavariable:
		return "metavariable"
	case KindEllipsisMetavariable:
		return "ellipsis-metavariable"
	case KindEllipsis:
		return "ellipsis"
	default:
		return "normal"
	}
}

// NodeType is the fully-resolved kind of a node: for KindNormal it carries
// the grammar's node-kind tag (e.g. "binary_expression"); for the other
// three it carries the metavariable id ("" for the anonymous ellipsis and
// for KindEllipsis).
type NodeType struct {
	Kind Kind
	Tag  string // grammar kind, only meaningful when Kind == KindNormal
	ID   string // metavariable id, only meaningful for the other three kinds
}

func Normal(tag string) NodeType                  { return NodeType{Kind: KindNormal, Tag: tag} }
func Metavariable(id string) NodeType             { return NodeType{Kind: KindMetavariable, ID: id} }
func EllipsisMetavariable(id string) NodeType      { return NodeType{Kind: KindEllipsisMetavariable, ID: id} }
func Ellipsis() NodeType                          { return NodeType{Kind: KindEllipsis} }

func (t NodeType) String() string {
	if t.Kind == KindNormal {
		return t.Tag
	}
	if t.ID == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.ID + ")"
}

// Node is a view into one position of a parsed tree. It borrows its
// source bytes from the owning Tree/Pattern and never outlives it.
type Node struct {
	typ NodeType

	startByte, endByte                 int
	startRow, startCol, endRow, endCol int

	named    bool
	children []*Node

	src *source.NormalizedSource
}

// New constructs a leaf or interior node. Callers (adapters, the pattern
// parser, and tests) build the tree bottom-up.
func New(typ NodeType, src *source.NormalizedSource, startByte, endByte int, startRow, startCol, endRow, endCol int, named bool, children []*Node) *Node {
	return &Node{
		typ:       typ,
		src:       src,
		startByte: startByte,
		endByte:   endByte,
		startRow:  startRow,
		startCol:  startCol,
		endRow:    endRow,
		endCol:    endCol,
		named:     named,
		children:  children,
	}
}

func (n *Node) Type() NodeType   { return n.typ }
func (n *Node) IsNamed() bool    { return n.named }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) StartByte() int  { return n.startByte }
func (n *Node) EndByte() int    { return n.endByte }

func (n *Node) StartPosition() (row, col int) { return n.startRow, n.startCol }
func (n *Node) EndPosition() (row, col int)   { return n.endRow, n.endCol }

// Text returns the node's verbatim source text (synthesized-newline-safe).
func (n *Node) Text() string {
	return n.src.TextAt(n.startByte, n.endByte)
}

// Source exposes the owning normalized source, needed by callers that
// must extract inter-node "glue" text (the rewriter) or build a
// ConsecutiveNodes spanning several siblings.
func (n *Node) Source() *source.NormalizedSource { return n.src }

// ConsecutiveNodes is a non-empty, ordered run of sibling nodes sharing a
// single source. Its start/end are derived from its first/last member.
type ConsecutiveNodes struct {
	nodes []*Node
}

// NewConsecutiveNodes wraps a non-empty slice of adjacent siblings.
// Passing an empty slice is a programmer error (spec.md §3 invariant);
// prefer matcher.EmptyCapture for the zero-width ellipsis case.
func NewConsecutiveNodes(nodes []*Node) (ConsecutiveNodes, bool) {
	if len(nodes) == 0 {
		return ConsecutiveNodes{}, false
	}
	return ConsecutiveNodes{nodes: nodes}, true
}

func (c ConsecutiveNodes) Nodes() []*Node { return c.nodes }
func (c ConsecutiveNodes) Len() int       { return len(c.nodes) }

func (c ConsecutiveNodes) StartByte() int { return c.nodes[0].startByte }
func (c ConsecutiveNodes) EndByte() int   { return c.nodes[len(c.nodes)-1].endByte }

func (c ConsecutiveNodes) StartPosition() (row, col int) { return c.nodes[0].StartPosition() }
func (c ConsecutiveNodes) EndPosition() (row, col int)   { return c.nodes[len(c.nodes)-1].EndPosition() }

// Text returns the verbatim text spanning every member, including any
// source bytes between them (their original inter-token whitespace).
func (c ConsecutiveNodes) Text() string {
	return c.nodes[0].src.TextAt(c.StartByte(), c.EndByte())
}

// Append is used while the matcher is folding ellipsis spans together.
func (c *ConsecutiveNodes) Append(n *Node) {
	c.nodes = append(c.nodes, n)
}

// Tree is a parsed target or pattern source: an owned NormalizedSource, a
// language tag, and the resolved root. Immutable once built.
type Tree struct {
	Language string
	Src      source.NormalizedSource
	Root     *Node
}
