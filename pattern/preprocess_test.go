package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess_ReplacesTokensOutsideQuotes(t *testing.T) {
	quotes := []QuoteStyle{{Open: '"', Close: '"', Escape: '\\'}}

	out, err := Preprocess(`x := :[A] + :[...REST]`, quotes)
	require.NoError(t, err)
	assert.Equal(t, "x := "+metavariablePlaceholder("A")+" + "+ellipsisMVPlaceholder("REST"), out)
}

func TestPreprocess_AnonymousForms(t *testing.T) {
	out, err := Preprocess(`f(:[_], :[...])`, nil)
	require.NoError(t, err)
	assert.Equal(t, "f("+anonymousEllipsisPlaceholder()+", "+anonymousEllipsisPlaceholder()+")", out)
}

func TestPreprocess_LeavesQuotedRegionsUntouched(t *testing.T) {
	quotes := []QuoteStyle{{Open: '"', Close: '"', Escape: '\\'}}

	out, err := Preprocess(`msg := "hello :[NAME]"`, quotes)
	require.NoError(t, err)
	assert.Equal(t, `msg := "hello :[NAME]"`, out)
}

func TestPreprocess_RespectsEscapeInsideQuotes(t *testing.T) {
	quotes := []QuoteStyle{{Open: '"', Close: '"', Escape: '\\'}}

	out, err := Preprocess(`a := "x\"y" + :[B]`, quotes)
	require.NoError(t, err)
	assert.Equal(t, `a := "x\"y" + `+metavariablePlaceholder("B"), out)
}

func TestPreprocess_RejectsInvalidName(t *testing.T) {
	_, err := Preprocess(`:[lowercase]`, nil)
	assert.Error(t, err)
}

func TestPreprocess_RejectsUnterminatedToken(t *testing.T) {
	_, err := Preprocess(`:[NAME`, nil)
	assert.Error(t, err)
}
