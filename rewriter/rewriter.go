// Package rewriter implements the Rewriter / Snippet Builder (spec.md
// §4.8): it turns a rewrite-pattern CST plus a capture map into
// replacement source text, preserving every byte of the rewrite
// pattern's own punctuation and whitespace that isn't itself a
// metavariable.
package rewriter

import (
	"regexp"
	"strings"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/matcher"
	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/source"
)

// Build renders rewritePattern (the root of a parsed rewrite pattern; it
// must not contain an ellipsis or ellipsis-metavariable — spec.md §4.8)
// against a set of captures, substituting metavariable text and
// collapsing any metavariable that has no binding (spec.md §4.8's
// "unavailable metavariable" rule): the unbound node, together with the
// glue that would otherwise have surrounded it, is dropped rather than
// leaving a hole or an error.
func Build(rewritePattern *cst.Node, captures matcher.CaptureMap) (string, error) {
	if err := pattern.ForbidEllipsis(rewritePattern); err != nil {
		return "", err
	}
	text, _, err := buildNode(rewritePattern, captures)
	if err != nil {
		return "", err
	}
	return text, nil
}

func buildNode(n *cst.Node, captures matcher.CaptureMap) (text string, available bool, err error) {
	t := n.Type()

	switch t.Kind {
	case cst.KindEllipsis, cst.KindEllipsisMetavariable:
		return "", false, pattern.ErrEllipsisInRewrite

	case cst.KindMetavariable:
		cap, ok := captures[t.ID]
		if !ok || cap.Kind == matcher.CaptureEmpty {
			return "", false, nil
		}
		return cap.Text(), true, nil
	}

	if len(n.Children()) == 0 {
		leaf := n.Text()
		if hasEmbeddedMetavariable(leaf) {
			return substituteLeaf(leaf, captures), true, nil
		}
		return leaf, true, nil
	}

	built, err := buildSiblings(n.Children(), captures, n.Source())
	if err != nil {
		return "", false, err
	}
	return built, true, nil
}

// buildSiblings renders a node's children in order, re-inserting the
// original rewrite pattern's inter-token glue text, and collapsing any
// run of unavailable children together with the glue around them.
func buildSiblings(children []*cst.Node, captures matcher.CaptureMap, src *source.NormalizedSource) (string, error) {
	var sb strings.Builder
	glueFrom := -1 // resume point for the next glue slice; -1 = nothing pending

	for _, child := range children {
		text, available, err := buildNode(child, captures)
		if err != nil {
			return "", err
		}
		if !available {
			glueFrom = child.EndByte()
			continue
		}
		if glueFrom >= 0 {
			sb.WriteString(src.TextAt(glueFrom, child.StartByte()))
		}
		sb.WriteString(text)
		glueFrom = child.EndByte()
	}
	return sb.String(), nil
}

var embeddedVarRe = regexp.MustCompile(`:\[(\.\.\.)?([A-Z_][A-Z0-9_]*)\]`)

func hasEmbeddedMetavariable(text string) bool {
	return embeddedVarRe.MatchString(text)
}

// substituteLeaf replaces every ":[NAME]"/":[...NAME]" token inside a
// leaf's own text (a string literal whose metavariable was never split
// out into its own CST node — spec.md §4.8's build_from_string_leaf)
// with the matching capture's text, or the empty string when unbound.
func substituteLeaf(text string, captures matcher.CaptureMap) string {
	return embeddedVarRe.ReplaceAllStringFunc(text, func(tok string) string {
		m := embeddedVarRe.FindStringSubmatch(tok)
		name := m[2]
		cap, ok := captures[name]
		if !ok || cap.Kind == matcher.CaptureEmpty {
			return ""
		}
		return cap.Text()
	})
}
