// Package golang adapts the Go grammar for the matcher/rewriter core,
// grounded in the shipped Queryable impl for Go (target_language /
// is_skippable / is_leaf_like / is_string_literal carried unchanged in
// meaning).
package golang

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsgo "github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/pattern"
)

type adapter struct{}

// Adapter is the lang.Adapter for Go source.
var Adapter lang.Adapter = adapter{}

func (adapter) Name() string          { return "go" }
func (adapter) Extensions() []string  { return []string{".go"} }
func (adapter) SitterLanguage() *sitter.Language { return tsgo.GetLanguage() }

func (adapter) QuoteStyles() []pattern.QuoteStyle {
	return []pattern.QuoteStyle{
		{Open: '"', Close: '"', Escape: '\\'},
		{Open: '`', Close: '`'},
	}
}

func (adapter) RootChildren(root *cst.Node) []*cst.Node {
	return root.Children()
}

func (adapter) IsSkippable(n *cst.Node) bool {
	return n.Type().Kind == cst.KindNormal && n.Type().Tag == "\n"
}

func (adapter) IsLeafLike(n *cst.Node) bool {
	return adapter{}.IsStringLiteral(n)
}

func (adapter) IsStringLiteral(n *cst.Node) bool {
	if n.Type().Kind != cst.KindNormal {
		return false
	}
	switch n.Type().Tag {
	case "interpreted_string_literal", "raw_string_literal":
		return true
	}
	return false
}

func (adapter) NodeValueEqual(a, b string) bool { return a == b }

func (adapter) RawPatternParsing() bool { return false }
