package golang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/sgrep/cst"
	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/lang/golang"
)

func TestAdapter_Identity(t *testing.T) {
	assert.Equal(t, "go", golang.Adapter.Name())
	assert.Equal(t, []string{".go"}, golang.Adapter.Extensions())
	assert.False(t, golang.Adapter.RawPatternParsing())
}

func TestAdapter_NodeValueEqual_CaseSensitive(t *testing.T) {
	assert.True(t, golang.Adapter.NodeValueEqual("foo", "foo"))
	assert.False(t, golang.Adapter.NodeValueEqual("foo", "Foo"))
}

func findNode(n *cst.Node, tag string) *cst.Node {
	if n.Type().Kind == cst.KindNormal && n.Type().Tag == tag {
		return n
	}
	for _, c := range n.Children() {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestAdapter_ParseTarget_RecognizesStringLiteral(t *testing.T) {
	tree, err := lang.ParseTarget(golang.Adapter, []byte("package p\n\nfunc a() { b := \"hello\" }\n"))
	require.NoError(t, err)
	assert.Equal(t, "go", tree.Language)

	lit := findNode(tree.Root, "interpreted_string_literal")
	require.NotNil(t, lit)
	assert.True(t, golang.Adapter.IsStringLiteral(lit))
	assert.True(t, golang.Adapter.IsLeafLike(lit))
}

func TestAdapter_RootChildren_IsFlatSourceFile(t *testing.T) {
	tree, err := lang.ParseTarget(golang.Adapter, []byte("package p\n"))
	require.NoError(t, err)
	assert.Equal(t, tree.Root.Children(), golang.Adapter.RootChildren(tree.Root))
}
