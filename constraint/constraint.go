// Package constraint implements the Constraint Engine (spec.md §4.7):
// predicates over a match's captures, evaluated after the matcher
// produces a candidate MatchedItem.
package constraint

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/matcher"
)

// PredicateKind enumerates the ten predicate shapes from spec.md §3.
type PredicateKind int

const (
	MatchQuery PredicateKind = iota
	NotMatchQuery
	MatchAnyOfQuery
	NotMatchAnyOfQuery
	MatchRegex
	NotMatchRegex
	MatchAnyOfRegex
	NotMatchAnyOfRegex
	BeAnyOf
	NotBeAnyOf
)

// Predicate is one evaluable condition against a single metavariable's
// capture. Only the fields relevant to Kind are populated; rule.Compile
// is responsible for that exactly-one-of validation before a Predicate
// is ever constructed.
type Predicate struct {
	Kind     PredicateKind
	Pattern  string
	Patterns []string
	Regex    *regexp.Regexp
	Regexes  []*regexp.Regexp
	Strings  []string
}

// Constraint binds a Predicate to the metavariable id it constrains.
type Constraint struct {
	Target    string
	Predicate Predicate
}

// ErrQueryAgainstLiteral is the hard error from spec.md §7 (error kind
// 5): MatchQuery/NotMatchQuery/their AnyOf forms require a captured
// subtree to search inside, but a literal capture (from the embedded
// string-pattern route, spec.md §4.6) has no subtree at all.
var ErrQueryAgainstLiteral = errors.New("constraint: cannot run a query predicate against a literal capture")

// SatisfiesAll evaluates every constraint against item with short-circuit
// AND semantics: the first predicate that doesn't hold stops evaluation
// and returns false. A non-nil error (ErrQueryAgainstLiteral, a
// sub-pattern parse error, a matcher soft-bound error, or an unknown
// predicate kind) aborts evaluation outright rather than being treated
// as "this predicate failed".
func SatisfiesAll(constraints []Constraint, item matcher.MatchedItem, a lang.Adapter, limits matcher.Limits) (bool, error) {
	for _, c := range constraints {
		ok, err := satisfies(c, item, a, limits)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func satisfies(c Constraint, item matcher.MatchedItem, a lang.Adapter, limits matcher.Limits) (bool, error) {
	p := c.Predicate
	switch p.Kind {
	case MatchQuery:
		return matchesAnyQuery(c.Target, []string{p.Pattern}, item, a, limits)
	case NotMatchQuery:
		ok, err := matchesAnyQuery(c.Target, []string{p.Pattern}, item, a, limits)
		return !ok, err
	case MatchAnyOfQuery:
		return matchesAnyQuery(c.Target, p.Patterns, item, a, limits)
	case NotMatchAnyOfQuery:
		ok, err := matchesAnyQuery(c.Target, p.Patterns, item, a, limits)
		return !ok, err
	case MatchRegex:
		return matchesAnyRegex(c.Target, []*regexp.Regexp{p.Regex}, item)
	case NotMatchRegex:
		ok, _ := matchesAnyRegex(c.Target, []*regexp.Regexp{p.Regex}, item)
		return !ok, nil
	case MatchAnyOfRegex:
		return matchesAnyRegex(c.Target, p.Regexes, item)
	case NotMatchAnyOfRegex:
		ok, _ := matchesAnyRegex(c.Target, p.Regexes, item)
		return !ok, nil
	case BeAnyOf:
		return isAnyOfString(c.Target, p.Strings, item), nil
	case NotBeAnyOf:
		return !isAnyOfString(c.Target, p.Strings, item), nil
	default:
		return false, fmt.Errorf("constraint: unknown predicate kind %d", p.Kind)
	}
}

func matchesAnyQuery(target string, patterns []string, item matcher.MatchedItem, a lang.Adapter, limits matcher.Limits) (bool, error) {
	cap, ok := item.CaptureOf(target)
	if !ok || cap.Kind == matcher.CaptureEmpty {
		return false, nil
	}
	if cap.Kind == matcher.CaptureLiteral {
		return false, fmt.Errorf("constraint: target %q: %w", target, ErrQueryAgainstLiteral)
	}

	m := matcher.New(a, limits)
	for _, patternSrc := range patterns {
		pat, err := lang.ParsePattern(a, patternSrc)
		if err != nil {
			return false, err
		}
		for _, n := range cap.Nodes.Nodes() {
			subTree := cst.Tree{Language: a.Name(), Src: *n.Source(), Root: n}
			matches, err := m.Find(pat.Tree.Root, subTree)
			if err != nil {
				return false, err
			}
			if len(matches) > 0 {
				return true, nil
			}
		}
	}
	return false, nil
}

func matchesAnyRegex(target string, regexes []*regexp.Regexp, item matcher.MatchedItem) (bool, error) {
	cap, ok := item.CaptureOf(target)
	if !ok {
		return false, nil
	}
	text := cap.Text()
	for _, re := range regexes {
		if re.MatchString(text) {
			return true, nil
		}
	}
	return false, nil
}

func isAnyOfString(target string, strings []string, item matcher.MatchedItem) bool {
	cap, ok := item.CaptureOf(target)
	if !ok {
		return false
	}
	text := cap.Text()
	for _, s := range strings {
		if s == text {
			return true
		}
	}
	return false
}
