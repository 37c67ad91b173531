// Package rule implements the Rule Layer (spec.md §4.10, §6): the raw
// YAML shape rule files ship in, and Compile, which turns a raw rule
// into everything the matcher/constraint/rewriter packages need,
// failing fast on any shape, grammar, or regex error.
package rule

import (
	"fmt"
	"regexp"

	"github.com/oxhq/sgrep/constraint"
	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/pattern"
)

// RawConstraintPredicate is the kebab-case "should" value a rule file
// spells out (spec.md §6).
type RawConstraintPredicate string

const (
	Match         RawConstraintPredicate = "match"
	NotMatch      RawConstraintPredicate = "not-match"
	MatchAnyOf    RawConstraintPredicate = "match-any-of"
	NotMatchAnyOf RawConstraintPredicate = "not-match-any-of"
	MatchRegex    RawConstraintPredicate = "match-regex"
	NotMatchRegex RawConstraintPredicate = "not-match-regex"
	BeAnyOf       RawConstraintPredicate = "be-any-of"
	NotBeAnyOf    RawConstraintPredicate = "not-be-any-of"
)

// RawConstraint is one constraint entry as it appears in a rule file.
// Nesting (`constraints` inside a constraint) was removed upstream and
// has no field here, so the YAML decoder ignores such a key rather than
// rejecting it; `patterns`/`regex-patterns`/`strings` are plain
// string lists rather than the deprecated nested pattern-with-
// constraints shape, since nesting a second layer of constraints is
// forbidden anyway.
type RawConstraint struct {
	Target string                 `yaml:"target"`
	Should RawConstraintPredicate `yaml:"should"`

	Pattern  string   `yaml:"pattern,omitempty"`
	Patterns []string `yaml:"patterns,omitempty"`

	String  string   `yaml:"string,omitempty"`
	Strings []string `yaml:"strings,omitempty"`

	RegexPattern  string   `yaml:"regex-pattern,omitempty"`
	RegexPatterns []string `yaml:"regex-patterns,omitempty"`
}

func (rc RawConstraint) patterns() ([]string, error) {
	switch {
	case rc.Pattern != "" && len(rc.Patterns) > 0:
		return nil, fmt.Errorf("rule: constraint on %q: use only one of pattern or patterns", rc.Target)
	case rc.Pattern != "":
		return []string{rc.Pattern}, nil
	default:
		return rc.Patterns, nil
	}
}

func (rc RawConstraint) strings() ([]string, error) {
	switch {
	case rc.String != "" && len(rc.Strings) > 0:
		return nil, fmt.Errorf("rule: constraint on %q: use only one of string or strings", rc.Target)
	case rc.String != "":
		return []string{rc.String}, nil
	default:
		return rc.Strings, nil
	}
}

func (rc RawConstraint) regexPatterns() ([]string, error) {
	switch {
	case rc.RegexPattern != "" && len(rc.RegexPatterns) > 0:
		return nil, fmt.Errorf("rule: constraint on %q: use only one of regex-pattern or regex-patterns", rc.Target)
	case rc.RegexPattern != "":
		return []string{rc.RegexPattern}, nil
	default:
		return rc.RegexPatterns, nil
	}
}

// compile turns one RawConstraint into a constraint.Constraint, exactly
// mirroring the upstream exactly-one-of validation per predicate shape.
func (rc RawConstraint) compile() (constraint.Constraint, error) {
	patterns, err := rc.patterns()
	if err != nil {
		return constraint.Constraint{}, err
	}
	regexPatterns, err := rc.regexPatterns()
	if err != nil {
		return constraint.Constraint{}, err
	}
	strs, err := rc.strings()
	if err != nil {
		return constraint.Constraint{}, err
	}

	switch rc.Should {
	case Match, NotMatch:
		switch {
		case len(patterns) == 1 && len(regexPatterns) == 0:
			kind := constraint.MatchQuery
			if rc.Should == NotMatch {
				kind = constraint.NotMatchQuery
			}
			return constraint.Constraint{Target: rc.Target, Predicate: constraint.Predicate{Kind: kind, Pattern: patterns[0]}}, nil
		case len(patterns) == 0 && len(regexPatterns) == 1:
			re, err := regexp.Compile(regexPatterns[0])
			if err != nil {
				return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: %w", rc.Target, err)
			}
			kind := constraint.MatchRegex
			if rc.Should == NotMatch {
				kind = constraint.NotMatchRegex
			}
			return constraint.Constraint{Target: rc.Target, Predicate: constraint.Predicate{Kind: kind, Regex: re}}, nil
		default:
			return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: (not-)match requires exactly one of pattern or regex-pattern", rc.Target)
		}

	case MatchAnyOf, NotMatchAnyOf:
		switch {
		case len(patterns) > 0 && len(regexPatterns) == 0:
			kind := constraint.MatchAnyOfQuery
			if rc.Should == NotMatchAnyOf {
				kind = constraint.NotMatchAnyOfQuery
			}
			return constraint.Constraint{Target: rc.Target, Predicate: constraint.Predicate{Kind: kind, Patterns: patterns}}, nil
		case len(patterns) == 0 && len(regexPatterns) > 0:
			res := make([]*regexp.Regexp, 0, len(regexPatterns))
			for _, p := range regexPatterns {
				re, err := regexp.Compile(p)
				if err != nil {
					return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: %w", rc.Target, err)
				}
				res = append(res, re)
			}
			kind := constraint.MatchAnyOfRegex
			if rc.Should == NotMatchAnyOf {
				kind = constraint.NotMatchAnyOfRegex
			}
			return constraint.Constraint{Target: rc.Target, Predicate: constraint.Predicate{Kind: kind, Regexes: res}}, nil
		default:
			return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: (not-)match-any-of requires one or more of pattern(s) or regex-pattern(s), not both", rc.Target)
		}

	case MatchRegex, NotMatchRegex:
		if len(patterns) != 1 {
			return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: %s accepts exactly one pattern", rc.Target, rc.Should)
		}
		re, err := regexp.Compile(patterns[0])
		if err != nil {
			return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: %w", rc.Target, err)
		}
		kind := constraint.MatchRegex
		if rc.Should == NotMatchRegex {
			kind = constraint.NotMatchRegex
		}
		return constraint.Constraint{Target: rc.Target, Predicate: constraint.Predicate{Kind: kind, Regex: re}}, nil

	case BeAnyOf, NotBeAnyOf:
		if len(patterns) > 0 || len(regexPatterns) > 0 {
			return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: (not-)be-any-of cannot take pattern(s)/regex-pattern(s), use string(s)", rc.Target)
		}
		if len(strs) == 0 {
			return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: (not-)be-any-of requires at least one string", rc.Target)
		}
		kind := constraint.BeAnyOf
		if rc.Should == NotBeAnyOf {
			kind = constraint.NotBeAnyOf
		}
		return constraint.Constraint{Target: rc.Target, Predicate: constraint.Predicate{Kind: kind, Strings: strs}}, nil

	default:
		return constraint.Constraint{}, fmt.Errorf("rule: constraint on %q: unknown predicate %q", rc.Target, rc.Should)
	}
}

// RawRule is one rule as it appears in a rule file (spec.md §6).
type RawRule struct {
	ID          string          `yaml:"id"`
	Language    string          `yaml:"language"`
	Message     string          `yaml:"message"`
	Pattern     string          `yaml:"pattern"`
	Constraints []RawConstraint `yaml:"constraints,omitempty"`
	Rewrite     string          `yaml:"rewrite,omitempty"`
}

// RawRuleSet is the top-level rule file document (spec.md §6).
type RawRuleSet struct {
	Version string    `yaml:"version"`
	Rules   []RawRule `yaml:"rules"`
}

// Rule is a compiled rule: a parsed pattern, its compiled constraints,
// and — when present — a parsed rewrite pattern, ready for
// matcher.Find/constraint.SatisfiesAll/rewriter.Build.
type Rule struct {
	ID       string
	Language string
	Message  string

	Pattern     pattern.Pattern
	Constraints []constraint.Constraint
	Rewrite     *cst.Node // nil when the rule has no rewrite
}

// Compile resolves a RawRule against the given language registry,
// parsing its pattern and (if present) rewrite pattern and compiling
// every constraint. It fails fast: the first grammar, regex, or shape
// error aborts compilation (spec.md §7, error kinds 1-4).
func Compile(raw RawRule, registry *lang.Registry) (*Rule, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("rule: rule is missing an id")
	}
	adapter, err := registry.Get(raw.Language)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", raw.ID, err)
	}
	if raw.Pattern == "" {
		return nil, fmt.Errorf("rule %q: missing pattern", raw.ID)
	}

	pat, err := lang.ParsePattern(adapter, raw.Pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", raw.ID, err)
	}

	constraints := make([]constraint.Constraint, 0, len(raw.Constraints))
	for _, rc := range raw.Constraints {
		c, err := rc.compile()
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", raw.ID, err)
		}
		constraints = append(constraints, c)
	}

	var rewriteRoot *cst.Node
	if raw.Rewrite != "" {
		rw, err := lang.ParsePattern(adapter, raw.Rewrite)
		if err != nil {
			return nil, fmt.Errorf("rule %q: rewrite: %w", raw.ID, err)
		}
		if err := pattern.ForbidEllipsis(rw.Tree.Root); err != nil {
			return nil, fmt.Errorf("rule %q: rewrite: %w", raw.ID, err)
		}
		rewriteRoot = rw.Tree.Root
	}

	return &Rule{
		ID:          raw.ID,
		Language:    raw.Language,
		Message:     raw.Message,
		Pattern:     pat,
		Constraints: constraints,
		Rewrite:     rewriteRoot,
	}, nil
}

// RuleSet is a compiled rule file.
type RuleSet struct {
	Version string
	Rules   []*Rule
}

// CompileSet compiles every rule in a raw rule set, in order, stopping
// at the first error.
func CompileSet(raw RawRuleSet, registry *lang.Registry) (*RuleSet, error) {
	rules := make([]*Rule, 0, len(raw.Rules))
	for _, rr := range raw.Rules {
		r, err := Compile(rr, registry)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return &RuleSet{Version: raw.Version, Rules: rules}, nil
}
