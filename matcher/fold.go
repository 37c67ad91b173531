package matcher

import "fmt"

// rawCapture is one (id, value) binding recorded while walking a single
// candidate alignment, before folding. The same id may appear more than
// once (spec.md §4.5: a metavariable used twice in one pattern).
type rawCapture struct {
	id    string
	value Capture
}

// fold groups raw captures by id, drops the anonymous "_" bucket (it is
// never folded or exposed — spec.md §4.5), and requires every capture
// sharing an id to have byte-identical text. Returns ok=false when two
// captures under the same id disagree, which discards the whole
// candidate match.
func fold(raw []rawCapture) (CaptureMap, bool) {
	grouped := make(map[string][]Capture)
	order := make([]string, 0, len(raw))
	for _, rc := range raw {
		if rc.id == "_" {
			continue
		}
		if _, seen := grouped[rc.id]; !seen {
			order = append(order, rc.id)
		}
		grouped[rc.id] = append(grouped[rc.id], rc.value)
	}

	out := make(CaptureMap, len(order))
	for _, id := range order {
		items := grouped[id]
		first := items[0]
		for _, other := range items[1:] {
			if other.Text() != first.Text() {
				return nil, false
			}
		}
		out[id] = first
	}
	return out, true
}

// mustFold is fold but panics on disagreement; used only where the
// caller has already checked agreement itself (none currently do — kept
// for symmetry with the fallible path tests exercise).
func mustFold(raw []rawCapture) CaptureMap {
	m, ok := fold(raw)
	if !ok {
		panic(fmt.Sprintf("matcher: fold called on disagreeing captures: %+v", raw))
	}
	return m
}
