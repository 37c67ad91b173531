// Package pattern implements the Pattern layer (spec.md §4.3): it turns a
// human-written pattern string into a CST whose metavariable and ellipsis
// positions are tagged as such, by preprocessing the pattern text into
// something the plain target grammar can parse (see Preprocess) and then
// reclassifying the resulting leaves (see ClassifyLeaf).
package pattern

import (
	"fmt"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/source"
)

// Pattern is a parsed pattern source: a cst.Tree whose nodes may carry
// cst.KindMetavariable / cst.KindEllipsisMetavariable / cst.KindEllipsis.
type Pattern struct {
	Tree cst.Tree
}

// ClassifyLeaf reports the NodeType a leaf should receive given its own
// source text, falling back to Normal(tag) when the text isn't shaped
// like one of the three placeholder forms. Adapters call this while
// wrapping tree-sitter leaves into cst.Node, but ONLY when building a
// pattern tree — target trees parsed from real source always pass
// isPattern=false and so only ever produce Normal nodes, even if a user's
// code happens to contain one of the reserved identifiers, which a
// correct adapter should not be asked to do for non-pattern parses.
func ClassifyLeaf(tag, text string, isPattern bool) cst.NodeType {
	if !isPattern {
		return cst.Normal(tag)
	}
	kind, id, ok := classify(text)
	if !ok {
		return cst.Normal(tag)
	}
	switch kind {
	case kindMetavariable:
		return cst.Metavariable(id)
	case kindEllipsisMV:
		return cst.EllipsisMetavariable(id)
	case kindEllipsis:
		return cst.Ellipsis()
	default:
		return cst.Normal(tag)
	}
}

// ErrEllipsisInRewrite is returned when a rewrite pattern — which must
// never contain an ellipsis or ellipsis-metavariable, per spec.md §4.8 —
// is parsed and found to contain one. ForbidEllipsis returns it eagerly so
// callers building a rewrite pattern fail before attempting to use it.
var ErrEllipsisInRewrite = fmt.Errorf("pattern: rewrite pattern may not contain an ellipsis operator")

// ForbidEllipsis walks a parsed pattern tree and returns
// ErrEllipsisInRewrite if any node is an ellipsis or ellipsis-metavariable.
// Used by the rewriter when compiling a rewrite pattern (spec.md §4.8).
func ForbidEllipsis(n *cst.Node) error {
	t := n.Type()
	if t.Kind == cst.KindEllipsis || t.Kind == cst.KindEllipsisMetavariable {
		return ErrEllipsisInRewrite
	}
	for _, c := range n.Children() {
		if err := ForbidEllipsis(c); err != nil {
			return err
		}
	}
	return nil
}

// New wraps an already-built tree into a Pattern. Adapters produce the
// cst.Tree by preprocessing + parsing + wrapping; this constructor just
// names the result for downstream packages.
func New(language string, src source.NormalizedSource, root *cst.Node) Pattern {
	return Pattern{Tree: cst.Tree{Language: language, Src: src, Root: root}}
}
