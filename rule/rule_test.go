package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/sgrep/constraint"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/lang/golang"
)

func newRegistry() *lang.Registry {
	reg := lang.NewRegistry()
	_ = reg.Register(golang.Adapter)
	return reg
}

func TestCompile_MissingID(t *testing.T) {
	_, err := Compile(RawRule{Language: "go", Pattern: `:[X]`}, newRegistry())
	assert.Error(t, err)
}

func TestCompile_UnknownLanguage(t *testing.T) {
	_, err := Compile(RawRule{ID: "r1", Language: "cobol", Pattern: `:[X]`}, newRegistry())
	assert.Error(t, err)
}

func TestCompile_MissingPattern(t *testing.T) {
	_, err := Compile(RawRule{ID: "r1", Language: "go"}, newRegistry())
	assert.Error(t, err)
}

func TestCompile_ValidRule(t *testing.T) {
	r, err := Compile(RawRule{
		ID:       "no-self-or",
		Language: "go",
		Pattern:  `:[X] || :[X]`,
		Rewrite:  `:[X]`,
	}, newRegistry())
	require.NoError(t, err)
	assert.Equal(t, "no-self-or", r.ID)
	assert.NotNil(t, r.Rewrite)
}

func TestCompile_RewriteWithEllipsisFails(t *testing.T) {
	_, err := Compile(RawRule{
		ID:       "bad",
		Language: "go",
		Pattern:  `:[X]`,
		Rewrite:  `f(:[...X])`,
	}, newRegistry())
	assert.Error(t, err)
}

func TestRawConstraint_ExactlyOneOfPatternXorPatterns(t *testing.T) {
	rc := RawConstraint{Target: "X", Should: Match, Pattern: "a", Patterns: []string{"b"}}
	_, err := rc.compile()
	assert.Error(t, err)
}

func TestRawConstraint_MatchCompilesToMatchQuery(t *testing.T) {
	rc := RawConstraint{Target: "X", Should: Match, Pattern: `:[_]`}
	c, err := rc.compile()
	require.NoError(t, err)
	assert.Equal(t, constraint.MatchQuery, c.Predicate.Kind)
}

func TestRawConstraint_BeAnyOfRejectsPattern(t *testing.T) {
	rc := RawConstraint{Target: "X", Should: BeAnyOf, Pattern: `:[_]`, Strings: []string{"a"}}
	_, err := rc.compile()
	assert.Error(t, err)
}

func TestRawConstraint_BeAnyOfRequiresStrings(t *testing.T) {
	rc := RawConstraint{Target: "X", Should: BeAnyOf}
	_, err := rc.compile()
	assert.Error(t, err)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
version: "1"
rules:
  - id: no-self-or
    language: go
    pattern: ":[X] || :[X]"
    rewrite: ":[X]"
    constraints:
      - target: X
        should: be-any-of
        strings: ["1", "2"]
`)
	raw, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, raw.Rules, 1)
	assert.Equal(t, "no-self-or", raw.Rules[0].ID)

	set, err := CompileSet(raw, newRegistry())
	require.NoError(t, err)
	require.Len(t, set.Rules, 1)
	assert.Len(t, set.Rules[0].Constraints, 1)
}
