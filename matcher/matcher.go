// Package matcher implements the Matcher (spec.md §4.4): the backtracking
// sibling aligner that finds every place in a target CST a pattern CST
// could bind, plus capture folding (§4.5) and embedded string-pattern
// matching (§4.6).
package matcher

import (
	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
)

// Matcher binds one language adapter and a set of soft bounds to the
// alignment algorithm.
type Matcher struct {
	Adapter lang.Adapter
	Limits  Limits
}

// New constructs a Matcher. Zero-value Limits means unbounded.
func New(a lang.Adapter, limits Limits) *Matcher {
	return &Matcher{Adapter: a, Limits: limits}
}

// Find returns every MatchedItem of the pattern within the target tree.
// A returned error is always *ErrLimitExceeded; the matches accumulated
// before the bound was hit are still returned alongside it.
func (m *Matcher) Find(patternRoot *cst.Node, target cst.Tree) ([]MatchedItem, error) {
	qsiblings := filterSkippable(m.Adapter.RootChildren(patternRoot), m.Adapter)
	if len(qsiblings) == 0 {
		return nil, nil
	}

	b := newBudget(m.Limits)
	var out []MatchedItem

	var walk func(n *cst.Node, isRoot bool) error
	walk = func(n *cst.Node, isRoot bool) error {
		children := filterSkippable(n.Children(), m.Adapter)
		if err := m.tryWindows(children, qsiblings, b, &out); err != nil {
			return err
		}
		if isRoot {
			if err := m.tryWindows([]*cst.Node{n}, qsiblings, b, &out); err != nil {
				return err
			}
		}
		for _, c := range n.Children() {
			if err := walk(c, false); err != nil {
				return err
			}
		}
		return nil
	}

	err := walk(target.Root, true)
	return out, err
}

func (m *Matcher) tryWindows(children, qsiblings []*cst.Node, b *budget, out *[]MatchedItem) error {
	n := len(children)
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			window := children[i:j]
			results, err := alignFrom(window, qsiblings, m.Adapter, b)
			if err != nil {
				return err
			}
			for _, raw := range results {
				captures, ok := fold(raw)
				if !ok {
					continue
				}
				if err := b.spendCandidate(); err != nil {
					return err
				}
				area, areaOK := cst.NewConsecutiveNodes(window)
				if !areaOK {
					continue
				}
				*out = append(*out, MatchedItem{Area: area, Captures: captures})
			}
		}
	}
	return nil
}
