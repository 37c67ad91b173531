package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/sgrep/source"
)

func TestNodeType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  NodeType
		want string
	}{
		{"normal", Normal("binary_expression"), "binary_expression"},
		{"metavariable", Metavariable("X"), "metavariable(X)"},
		{"ellipsis-metavariable", EllipsisMetavariable("REST"), "ellipsis-metavariable(REST)"},
		{"anonymous ellipsis", Ellipsis(), "ellipsis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func leaf(typ NodeType, src *source.NormalizedSource, start, end int) *Node {
	return New(typ, src, start, end, 0, start, 0, end, true, nil)
}

func TestNode_Text(t *testing.T) {
	norm := source.Normalize([]byte("abcdef"))
	n := leaf(Normal("ident"), &norm, 1, 4)
	assert.Equal(t, "bcd", n.Text())
}

func TestConsecutiveNodes_Text_SpansGlue(t *testing.T) {
	norm := source.Normalize([]byte("a, b, c"))
	a := leaf(Normal("ident"), &norm, 0, 1)
	c := leaf(Normal("ident"), &norm, 6, 7)

	cn, ok := NewConsecutiveNodes([]*Node{a, c})
	require.True(t, ok)
	assert.Equal(t, "a, b, c", cn.Text())
	assert.Equal(t, 0, cn.StartByte())
	assert.Equal(t, 7, cn.EndByte())
}

func TestNewConsecutiveNodes_EmptyIsFalse(t *testing.T) {
	_, ok := NewConsecutiveNodes(nil)
	assert.False(t, ok)
}

func TestConsecutiveNodes_Append(t *testing.T) {
	norm := source.Normalize([]byte("abc"))
	a := leaf(Normal("ident"), &norm, 0, 1)
	b := leaf(Normal("ident"), &norm, 1, 2)

	cn, ok := NewConsecutiveNodes([]*Node{a})
	require.True(t, ok)
	cn.Append(b)
	assert.Equal(t, 2, cn.Len())
	assert.Equal(t, 2, cn.EndByte())
}
