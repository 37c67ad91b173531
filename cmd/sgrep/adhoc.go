package main

import (
	"fmt"
	"os"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/rule"
)

// readFileString reads a file's contents as a string, for the provider
// pipeline which works in terms of string source.
func readFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// adHocRule builds a rule.Rule directly from a pattern (and optional
// rewrite) string, for find/rewrite's single-shot, no-YAML-file usage.
// Its id is the fixed "adhoc" and it has no message or constraints,
// mirroring rule.Compile's
// pattern/rewrite handling exactly so both paths share one code path in
// the matcher/rewriter.
func adHocRule(language, patternText, rewriteText string, registry *lang.Registry) (*rule.Rule, error) {
	adapter, err := registry.Get(language)
	if err != nil {
		return nil, err
	}

	pat, err := lang.ParsePattern(adapter, patternText)
	if err != nil {
		return nil, fmt.Errorf("sgrep: parse pattern: %w", err)
	}

	var rewriteRoot *cst.Node
	if rewriteText != "" {
		rw, err := lang.ParsePattern(adapter, rewriteText)
		if err != nil {
			return nil, fmt.Errorf("sgrep: parse rewrite: %w", err)
		}
		if err := pattern.ForbidEllipsis(rw.Tree.Root); err != nil {
			return nil, fmt.Errorf("sgrep: rewrite: %w", err)
		}
		rewriteRoot = rw.Tree.Root
	}

	return &rule.Rule{
		ID:       "adhoc",
		Language: language,
		Pattern:  pat,
		Rewrite:  rewriteRoot,
	}, nil
}
