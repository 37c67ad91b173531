// Package lang implements the Grammar Adapter capability surface
// (spec.md §4.2), generalized to the three shipped dialects. Each
// concrete adapter under lang/golang, lang/hcl and lang/dockerfile wraps
// a github.com/smacker/go-tree-sitter grammar and supplies the small
// set of capabilities the matcher and rewriter need beyond "parse".
package lang

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/source"
)

// Adapter is the capability surface a target/pattern grammar must supply.
// The matcher and rewriter are otherwise written entirely in terms of
// cst.Node and never import smacker/go-tree-sitter directly.
type Adapter interface {
	// Name is the language tag used in rule files and the registry
	// ("go", "hcl", "dockerfile").
	Name() string

	// Extensions lists file suffixes this adapter claims, e.g. ".go".
	Extensions() []string

	// SitterLanguage is the underlying tree-sitter grammar.
	SitterLanguage() *sitter.Language

	// QuoteStyles lists the quoted-region delimiters pattern.Preprocess
	// must skip over so embedded ":[NAME]" text inside a string literal
	// survives into the parsed leaf unchanged.
	QuoteStyles() []pattern.QuoteStyle

	// RootChildren returns the nodes the matcher should treat as the
	// top-level forest, unwrapping any grammar-imposed outer layer (HCL
	// wraps its body one level deeper than Go's source_file does).
	RootChildren(root *cst.Node) []*cst.Node

	// IsSkippable reports whether a node (by grammar tag) is pure
	// formatting noise the aligner should skip on both sides without
	// requiring a corresponding node on the other side (spec.md §4.4).
	IsSkippable(n *cst.Node) bool

	// IsLeafLike reports whether a node should be compared as an opaque
	// leaf even if the grammar gave it children (spec.md §4.4/§4.6).
	IsLeafLike(n *cst.Node) bool

	// IsStringLiteral reports whether a leaf is a string/text literal
	// whose content should be matched via the embedded string-pattern
	// regex route (spec.md §4.6) rather than node-kind/text equality.
	IsStringLiteral(n *cst.Node) bool

	// NodeValueEqual compares two leaves' text for the purpose of plain
	// (non-string-literal) leaf matching. Case-insensitive for
	// dockerfile instruction keywords (spec.md §4.2/§8 scenario 4),
	// exact everywhere else.
	NodeValueEqual(a, b string) bool

	// RawPatternParsing reports whether pattern.Preprocess should be
	// skipped entirely for this dialect. Dockerfile's grammar treats
	// everything past an instruction keyword as one opaque argument
	// leaf regardless of its text, so ":[NAME]" syntax already parses
	// as-is and must survive untouched for the embedded string-pattern
	// matcher (spec.md §4.6) to find it; substituting a placeholder
	// identifier there would erase the very text that route matches on.
	RawPatternParsing() bool
}

// ParseTarget parses real target source: every node is Normal(tag); the
// placeholder-classification pass never runs.
func ParseTarget(a Adapter, src []byte) (cst.Tree, error) {
	return parse(a, src, false)
}

// ParsePattern preprocesses pattern source (see pattern.Preprocess) using
// the adapter's quote styles, parses it with the same target grammar, and
// reclassifies placeholder-shaped leaves into metavariable/ellipsis nodes.
func ParsePattern(a Adapter, src string) (pattern.Pattern, error) {
	rewritten := src
	if !a.RawPatternParsing() {
		var err error
		rewritten, err = pattern.Preprocess(src, a.QuoteStyles())
		if err != nil {
			return pattern.Pattern{}, err
		}
	}
	tree, err := parse(a, []byte(rewritten), true)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("pattern: parse %s pattern: %w", a.Name(), err)
	}
	return pattern.Pattern{Tree: tree}, nil
}

func parse(a Adapter, raw []byte, isPattern bool) (cst.Tree, error) {
	norm := source.Normalize(raw)

	parser := sitter.NewParser()
	parser.SetLanguage(a.SitterLanguage())
	tsTree, err := parser.ParseCtx(context.Background(), nil, norm.Bytes())
	if err != nil {
		return cst.Tree{}, fmt.Errorf("lang: %s: %w", a.Name(), err)
	}
	if tsTree == nil || tsTree.RootNode() == nil {
		return cst.Tree{}, fmt.Errorf("lang: %s: parser returned no tree", a.Name())
	}

	root := wrap(tsTree.RootNode(), &norm, isPattern)
	return cst.Tree{Language: a.Name(), Src: norm, Root: root}, nil
}

// wrap recursively converts a *sitter.Node into a *cst.Node, classifying
// leaves via pattern.ClassifyLeaf when isPattern is set.
func wrap(n *sitter.Node, src *source.NormalizedSource, isPattern bool) *cst.Node {
	count := int(n.ChildCount())
	children := make([]*cst.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		children = append(children, wrap(c, src, isPattern))
	}

	startByte, endByte := int(n.StartByte()), int(n.EndByte())
	sp, ep := n.StartPoint(), n.EndPoint()

	var typ cst.NodeType
	if len(children) == 0 {
		text := src.TextAt(startByte, endByte)
		typ = pattern.ClassifyLeaf(n.Type(), text, isPattern)
	} else {
		typ = cst.Normal(n.Type())
	}

	return cst.New(typ, src, startByte, endByte,
		int(sp.Row), int(sp.Column), int(ep.Row), int(ep.Column),
		n.IsNamed(), children)
}
