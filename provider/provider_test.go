package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/lang/golang"
	"github.com/oxhq/sgrep/matcher"
	"github.com/oxhq/sgrep/rule"
)

func compileRule(t *testing.T, raw rule.RawRule) *rule.Rule {
	t.Helper()
	reg := lang.NewRegistry()
	require.NoError(t, reg.Register(golang.Adapter))
	r, err := rule.Compile(raw, reg)
	require.NoError(t, err)
	return r
}

func TestProvider_Find(t *testing.T) {
	r := compileRule(t, rule.RawRule{ID: "r1", Language: "go", Pattern: `:[X] || :[X]`})
	p := New(golang.Adapter, matcher.Limits{})

	matches, err := p.Find(`func a() { b := 1 || 1 }`, r)
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestProvider_Find_FiltersByConstraint(t *testing.T) {
	r := compileRule(t, rule.RawRule{
		ID:       "r1",
		Language: "go",
		Pattern:  `x := :[VAL]`,
		Constraints: []rule.RawConstraint{
			{Target: "VAL", Should: rule.BeAnyOf, Strings: []string{"41"}},
		},
	})
	p := New(golang.Adapter, matcher.Limits{})

	matches, err := p.Find(`func a() { x := 42 }`, r)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestProvider_Rewrite_SingleMatch(t *testing.T) {
	r := compileRule(t, rule.RawRule{ID: "r1", Language: "go", Pattern: `:[X] || :[X]`, Rewrite: `:[X]`})
	p := New(golang.Adapter, matcher.Limits{})

	modified, diff, err := p.Rewrite(`func a() { b := 1 || 1 }`, r)
	require.NoError(t, err)
	assert.Equal(t, `func a() { b := 1 }`, modified)
	assert.NotEmpty(t, diff)
}

func TestProvider_Rewrite_MultipleNonOverlappingMatches(t *testing.T) {
	r := compileRule(t, rule.RawRule{ID: "r1", Language: "go", Pattern: `:[X] || :[X]`, Rewrite: `:[X]`})
	p := New(golang.Adapter, matcher.Limits{})

	src := `func a() { b := 1 || 1; c := 2 || 2 }`
	modified, _, err := p.Rewrite(src, r)
	require.NoError(t, err)
	assert.Equal(t, `func a() { b := 1; c := 2 }`, modified)
}

func TestProvider_Rewrite_NoSpuriousTrailingNewline(t *testing.T) {
	r := compileRule(t, rule.RawRule{ID: "r1", Language: "go", Pattern: `:[X] || :[X]`, Rewrite: `:[X]`})
	p := New(golang.Adapter, matcher.Limits{})

	// No trailing newline and the match doesn't reach EOF: the splice
	// must not pick up the synthesized newline source.Normalize adds
	// internally.
	src := `func a() { b := 1 || 1 }`
	modified, _, err := p.Rewrite(src, r)
	require.NoError(t, err)
	assert.False(t, strings.HasSuffix(modified, "\n"))
}

func TestProvider_Rewrite_NoRewritePatternErrors(t *testing.T) {
	r := compileRule(t, rule.RawRule{ID: "r1", Language: "go", Pattern: `:[X]`})
	p := New(golang.Adapter, matcher.Limits{})

	_, _, err := p.Rewrite(`func a() { b := 1 }`, r)
	assert.Error(t, err)
}
