package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/source"
)

func TestClassifyLeaf_OnlyClassifiesForPatterns(t *testing.T) {
	mv := metavariablePlaceholder("X")

	assert.Equal(t, cst.Metavariable("X"), ClassifyLeaf("identifier", mv, true))
	assert.Equal(t, cst.Normal("identifier"), ClassifyLeaf("identifier", mv, false))
}

func TestClassifyLeaf_NonPlaceholderFallsBackToNormal(t *testing.T) {
	assert.Equal(t, cst.Normal("identifier"), ClassifyLeaf("identifier", "someVar", true))
}

func TestForbidEllipsis(t *testing.T) {
	norm := source.Normalize([]byte("x"))

	ellipsisLeaf := cst.New(cst.Ellipsis(), &norm, 0, 1, 0, 0, 0, 1, true, nil)
	root := cst.New(cst.Normal("block"), &norm, 0, 1, 0, 0, 0, 1, true, []*cst.Node{ellipsisLeaf})
	assert.ErrorIs(t, ForbidEllipsis(root), ErrEllipsisInRewrite)

	plainLeaf := cst.New(cst.Normal("identifier"), &norm, 0, 1, 0, 0, 0, 1, true, nil)
	plainRoot := cst.New(cst.Normal("block"), &norm, 0, 1, 0, 0, 0, 1, true, []*cst.Node{plainLeaf})
	assert.NoError(t, ForbidEllipsis(plainRoot))
}
