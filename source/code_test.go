package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Rewrite_Basic(t *testing.T) {
	src := NormalizeString("func a() { b := 1 || 1 }")
	c := NewCode(src)
	start := len("func a() { b := ")
	end := start + len("1 || 1")
	got := c.Rewrite(start, end, "1")
	assert.Equal(t, "func a() { b := 1 }", got)
}

func TestCode_Rewrite_ClipsAtSynthesizedNewline(t *testing.T) {
	src := NormalizeString("abc") // synthesizes a trailing '\n'
	c := NewCode(src)
	got := c.Rewrite(1, 3, "X")
	assert.Equal(t, "aX", got)
}
