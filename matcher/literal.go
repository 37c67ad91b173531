package matcher

import (
	"regexp"
	"strings"
)

// metavarInLiteralRe finds ":[NAME]" and anonymous ":[_]" tokens inside a
// pattern's raw string-literal text (spec.md §4.6). Unlike structural
// metavariables, these are never preprocessed into placeholder
// identifiers (dockerfile skips preprocessing entirely; go/hcl only
// preprocess outside quoted regions) so they still read literally here.
var metavarInLiteralRe = regexp.MustCompile(`:\[(_|[A-Z_][A-Z0-9_]*)\]`)

// matchStringPattern matches a pattern's literal text (still containing
// ":[NAME]" markers) against a target leaf's literal text, by turning the
// pattern into an anchored regex with one named capture group per
// metavariable, each greedy under Go regexp's leftmost-first semantics.
// It returns one binding set for the whole-string match, or nil if the
// literal doesn't match at all.
func matchStringPattern(patternText, targetText string) []map[string]string {
	names := metavarInLiteralRe.FindAllStringSubmatch(patternText, -1)

	quoted := regexp.QuoteMeta(patternText)
	quoted = replaceLiteralTokens(quoted, func(name string) string {
		if name == "_" {
			return `(.*)`
		}
		// Same name used twice in one literal: RE2 has no backreferences,
		// so each occurrence gets its own group under the same name and
		// the texts are compared after the match below.
		return `(?P<` + name + `>.*)`
	})

	re, err := regexp.Compile(`(?s-m)\A` + quoted + `\z`)
	if err != nil {
		return nil
	}
	m := re.FindStringSubmatch(targetText)
	if m == nil {
		return nil
	}

	out := make(map[string]string, len(names))
	for i, g := range re.SubexpNames() {
		if g == "" || i >= len(m) {
			continue
		}
		if prev, dup := out[g]; dup && prev != m[i] {
			// Only the one match the regexp picked is checked; another
			// split of the target text is not searched.
			return nil
		}
		out[g] = m[i]
	}
	return []map[string]string{out}
}

// escapedTokenRe finds an already-QuoteMeta-escaped ":[NAME]"/":[_]"
// token: QuoteMeta turns "[" and "]" into "\[" and "\]" but leaves ":"
// and the name's letters/digits/underscore untouched.
var escapedTokenRe = regexp.MustCompile(`:\\\[(_|[A-Z_][A-Z0-9_]*)\\\]`)

func replaceLiteralTokens(escaped string, repl func(name string) string) string {
	return escapedTokenRe.ReplaceAllStringFunc(escaped, func(tok string) string {
		m := escapedTokenRe.FindStringSubmatch(tok)
		return repl(m[1])
	})
}

// hasLiteralMetavariables reports whether a pattern leaf's text contains
// any embedded ":[NAME]"/":[_]" token, or any ":[" at all (so a malformed
// token such as ":[...X]" or ":[x]" also takes the regex route, where it
// can only match itself literally); when it doesn't, the caller
// falls back to plain NodeValueEqual comparison instead of building a
// regex for a literal that has nothing to capture.
func hasLiteralMetavariables(patternText string) bool {
	return metavarInLiteralRe.MatchString(patternText) || strings.Contains(patternText, ":[")
}
