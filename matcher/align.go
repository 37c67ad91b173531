package matcher

import (
	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
)

// alignFrom enumerates every way qsiblings can be fully aligned against
// the entirety of tsiblings, returning one []rawCapture per valid
// alignment. This is the sibling aligner at the heart of spec.md §4.4,
// written as backtracking recursion rather than the original's explicit
// LIFO worklist — same search space, same result set, easier to follow.
func alignFrom(tsiblings, qsiblings []*cst.Node, a lang.Adapter, b *budget) ([][]rawCapture, error) {
	if err := b.spendWorklist(); err != nil {
		return nil, err
	}

	if len(qsiblings) == 0 {
		if len(tsiblings) == 0 {
			return [][]rawCapture{{}}, nil
		}
		return nil, nil
	}

	head := qsiblings[0]
	switch head.Type().Kind {
	case cst.KindEllipsis:
		var results [][]rawCapture
		for split := 0; split <= len(tsiblings); split++ {
			sub, err := alignFrom(tsiblings[split:], qsiblings[1:], a, b)
			if err != nil {
				return nil, err
			}
			results = append(results, sub...)
		}
		return results, nil

	case cst.KindEllipsisMetavariable:
		var results [][]rawCapture
		id := head.Type().ID
		for split := 0; split <= len(tsiblings); split++ {
			sub, err := alignFrom(tsiblings[split:], qsiblings[1:], a, b)
			if err != nil {
				return nil, err
			}
			var cap Capture
			if split == 0 {
				cap = EmptyCapture()
			} else {
				cn, _ := cst.NewConsecutiveNodes(tsiblings[:split])
				cap = NodesCapture(cn)
			}
			for _, s := range sub {
				merged := make([]rawCapture, 0, len(s)+1)
				merged = append(merged, rawCapture{id: id, value: cap})
				merged = append(merged, s...)
				results = append(results, merged)
			}
		}
		return results, nil

	default:
		if len(tsiblings) == 0 {
			return nil, nil
		}
		deltas, ok, err := matchSubtree(tsiblings[0], head, a, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		rest, err := alignFrom(tsiblings[1:], qsiblings[1:], a, b)
		if err != nil {
			return nil, err
		}
		var results [][]rawCapture
		for _, d := range deltas {
			for _, r := range rest {
				merged := make([]rawCapture, 0, len(d)+len(r))
				merged = append(merged, d...)
				merged = append(merged, r...)
				results = append(results, merged)
			}
		}
		return results, nil
	}
}

// matchSubtree decides whether target node t can stand in the position
// of pattern node q, returning every way of doing so as a set of
// capture deltas (more than one when q's own children contain an
// ellipsis, since then multiple child-alignments may each succeed).
func matchSubtree(t, q *cst.Node, a lang.Adapter, b *budget) ([][]rawCapture, bool, error) {
	if q.Type().Kind == cst.KindMetavariable {
		cn, _ := cst.NewConsecutiveNodes([]*cst.Node{t})
		return [][]rawCapture{{{id: q.Type().ID, value: NodesCapture(cn)}}}, true, nil
	}

	if a.IsLeafLike(q) || len(q.Children()) == 0 {
		delta, ok := matchLeaf(t, q, a)
		if !ok {
			return nil, false, nil
		}
		return [][]rawCapture{delta}, true, nil
	}

	if t.Type().Kind != cst.KindNormal || q.Type().Kind != cst.KindNormal || t.Type().Tag != q.Type().Tag {
		return nil, false, nil
	}
	if len(t.Children()) == 0 {
		return nil, false, nil
	}

	tk := filterSkippable(t.Children(), a)
	qk := filterSkippable(q.Children(), a)
	results, err := alignFrom(tk, qk, a, b)
	if err != nil {
		return nil, false, err
	}
	if len(results) == 0 {
		return nil, false, nil
	}
	return results, true, nil
}

// matchLeaf compares two leaves: via the embedded string-pattern regex
// route (spec.md §4.6) when both sides are string literals and the
// pattern actually embeds a metavariable, or plain kind+value equality
// otherwise (spec.md §4.4's node_value_eq).
func matchLeaf(t, q *cst.Node, a lang.Adapter) ([]rawCapture, bool) {
	if a.IsStringLiteral(q) {
		patternText := q.Text()
		if hasLiteralMetavariables(patternText) {
			if !a.IsStringLiteral(t) && t.Type().Kind != cst.KindNormal {
				return nil, false
			}
			matches := matchStringPattern(patternText, t.Text())
			if len(matches) == 0 {
				return nil, false
			}
			bound := matches[0]
			caps := make([]rawCapture, 0, len(bound))
			for name, val := range bound {
				if name == "_" {
					continue
				}
				caps = append(caps, rawCapture{id: name, value: LiteralCapture(val)})
			}
			return caps, true
		}
	}

	if t.Type().Kind != cst.KindNormal || q.Type().Kind != cst.KindNormal {
		return nil, false
	}
	if t.Type().Tag != q.Type().Tag {
		return nil, false
	}
	if !a.NodeValueEqual(t.Text(), q.Text()) {
		return nil, false
	}
	return nil, true
}

// filterSkippable drops pure-formatting nodes (spec.md §4.4) from a
// sibling list before alignment.
func filterSkippable(nodes []*cst.Node, a lang.Adapter) []*cst.Node {
	out := make([]*cst.Node, 0, len(nodes))
	for _, n := range nodes {
		if a.IsSkippable(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
