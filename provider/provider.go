// Package provider binds one lang.Adapter to the core pipeline
// (Matcher, Constraint Engine, Rewriter, Code Splicer) behind a narrow
// Find/Rewrite facade, mirroring the teacher's providers.Provider.
package provider

import (
	"fmt"
	"sort"

	"github.com/oxhq/sgrep/constraint"
	"github.com/oxhq/sgrep/internal/util"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/matcher"
	"github.com/oxhq/sgrep/rewriter"
	"github.com/oxhq/sgrep/rule"
	"github.com/oxhq/sgrep/source"
)

// Provider runs one language's full pipeline against real source text.
type Provider struct {
	Adapter lang.Adapter
	Matcher *matcher.Matcher
}

// New constructs a Provider for a single adapter with the given soft
// bounds.
func New(a lang.Adapter, limits matcher.Limits) *Provider {
	return &Provider{Adapter: a, Matcher: matcher.New(a, limits)}
}

// Find returns every constraint-satisfying match of r's pattern within
// src.
func (p *Provider) Find(src string, r *rule.Rule) ([]matcher.MatchedItem, error) {
	target, err := lang.ParseTarget(p.Adapter, []byte(src))
	if err != nil {
		return nil, err
	}

	candidates, err := p.Matcher.Find(r.Pattern.Tree.Root, target)
	if err != nil && len(candidates) == 0 {
		return nil, err
	}

	matches := make([]matcher.MatchedItem, 0, len(candidates))
	for _, item := range candidates {
		ok, cErr := constraint.SatisfiesAll(r.Constraints, item, p.Adapter, p.Matcher.Limits)
		if cErr != nil {
			return nil, cErr
		}
		if ok {
			matches = append(matches, item)
		}
	}
	return matches, err
}

// Rewrite applies r's rewrite pattern to every constraint-satisfying,
// non-overlapping match of r's pattern within src, splicing from the end
// of the source backwards (descending start byte) and skipping any match
// that ends past the start of a match already spliced, so of two nested
// matches the one starting later wins. It returns the rewritten source
// and a unified diff against the original.
func (p *Provider) Rewrite(src string, r *rule.Rule) (modified string, diff string, err error) {
	if r.Rewrite == nil {
		return "", "", fmt.Errorf("provider: rule %q has no rewrite pattern", r.ID)
	}

	matches, err := p.Find(src, r)
	if err != nil {
		return "", "", err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Area.StartByte() > matches[j].Area.StartByte()
	})

	norm := source.NormalizeString(src)
	original := norm.TextAt(0, norm.Len())
	text := original

	lastStart := len(text)
	for _, m := range matches {
		start, end := m.Area.StartByte(), m.Area.EndByte()
		if end > lastStart {
			continue // overlaps a match already spliced closer to the end
		}
		snippet, bErr := rewriter.Build(r.Rewrite, m.Captures)
		if bErr != nil {
			return "", "", bErr
		}
		text = source.NewCode(source.NormalizeString(text)).Rewrite(start, end, snippet)
		lastStart = start
	}

	modified = text
	diff, dErr := util.UnifiedDiff(original, modified, "before", "after")
	if dErr != nil {
		return "", "", dErr
	}
	return modified, diff, nil
}
