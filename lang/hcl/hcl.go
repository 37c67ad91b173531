// Package hcl adapts the HCL grammar, grounded in the shipped Queryable
// impl for HCL: its grammar wraps the file body one layer deeper than
// Go's source_file does, so RootChildren unwraps that extra layer.
package hcl

import (
	sitter "github.com/smacker/go-tree-sitter"
	tshcl "github.com/smacker/go-tree-sitter/hcl"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/pattern"
)

type adapter struct{}

// Adapter is the lang.Adapter for HCL source.
var Adapter lang.Adapter = adapter{}

func (adapter) Name() string                     { return "hcl" }
func (adapter) Extensions() []string             { return []string{".hcl", ".tf"} }
func (adapter) SitterLanguage() *sitter.Language { return tshcl.GetLanguage() }

func (adapter) QuoteStyles() []pattern.QuoteStyle {
	return []pattern.QuoteStyle{
		{Open: '"', Close: '"', Escape: '\\'},
	}
}

// RootChildren unwraps the body node wrapping the file's top-level
// blocks/attributes: root.Children()[0].Children().
func (adapter) RootChildren(root *cst.Node) []*cst.Node {
	children := root.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0].Children()
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
	case "string_lit", "quoted_template":
		return true
	}
	return false
}

func (adapter) NodeValueEqual(a, b string) bool { return a == b }

func (adapter) RawPatternParsing() bool { return false }
