package matcher

import "github.com/oxhq/sgrep/cst"

// CaptureKind distinguishes what a metavariable ended up bound to: an
// ellipsis that matched zero target nodes (Empty), a literal fragment
// captured from inside a string-literal leaf (Literal), or one or more
// real target nodes (Nodes). Mirrors spec.md §3's CaptureItem.
type CaptureKind int

const (
	CaptureEmpty CaptureKind = iota
	CaptureLiteral
	CaptureNodes
)

// Capture is the value bound to one metavariable id within one match.
type Capture struct {
	Kind    CaptureKind
	Literal string
	Nodes   cst.ConsecutiveNodes
}

// EmptyCapture represents an ellipsis-metavariable that matched a
// zero-length span of siblings.
func EmptyCapture() Capture { return Capture{Kind: CaptureEmpty} }

// LiteralCapture wraps a regex-extracted fragment from an embedded
// string-pattern match (spec.md §4.6).
func LiteralCapture(s string) Capture { return Capture{Kind: CaptureLiteral, Literal: s} }

// NodesCapture wraps one or more consecutive real target nodes.
func NodesCapture(n cst.ConsecutiveNodes) Capture { return Capture{Kind: CaptureNodes, Nodes: n} }

// Text returns the capture's value as source text, the form every
// constraint predicate and the rewriter actually compares/substitutes.
func (c Capture) Text() string {
	switch c.Kind {
	case CaptureEmpty:
		return ""
	case CaptureLiteral:
		return c.Literal
	case CaptureNodes:
		return c.Nodes.Text()
	default:
		return ""
	}
}

// CaptureMap is the set of metavariable bindings produced by one match.
type CaptureMap map[string]Capture

// MatchedItem is one successful match: the target span it covers plus
// its capture bindings (spec.md §3).
type MatchedItem struct {
	Area     cst.ConsecutiveNodes
	Captures CaptureMap
}

// CaptureOf is a convenience accessor used by constraint evaluation and
// the rewriter.
func (m MatchedItem) CaptureOf(id string) (Capture, bool) {
	c, ok := m.Captures[id]
	return c, ok
}
