// Package dockerfile adapts the Dockerfile grammar, grounded in the
// shipped Queryable impl for Dockerfile. Dockerfile's grammar treats
// everything past an instruction keyword as an opaque argument leaf
// (shell_fragment / image_spec / unquoted_string / shell_command), so
// metavariable syntax inside an instruction's argument is matched purely
// through the embedded string-pattern route (spec.md §4.6): pattern
// preprocessing is skipped (see RawPatternParsing) and the leaf's raw
// text, ":[NAME]" markers intact, is handed straight to the literal
// matcher.
package dockerfile

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsdockerfile "github.com/smacker/go-tree-sitter/dockerfile"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/pattern"
)

type adapter struct{}

// Adapter is the lang.Adapter for Dockerfile source.
var Adapter lang.Adapter = adapter{}

func (adapter) Name() string                     { return "dockerfile" }
func (adapter) Extensions() []string             { return []string{"Dockerfile", ".dockerfile"} }
func (adapter) SitterLanguage() *sitter.Language { return tsdockerfile.GetLanguage() }

func (adapter) QuoteStyles() []pattern.QuoteStyle { return nil }

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
	case "shell_fragment", "double_quoted_string", "unquoted_string", "shell_command", "image_spec":
		return true
	}
	return false
}

// NodeValueEqual is case-insensitive: Dockerfile instruction keywords
// (FROM/from/From) are equivalent (spec.md §4.2/§8 scenario 4).
func (adapter) NodeValueEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

func (adapter) RawPatternParsing() bool { return true }
