package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/sgrep/source"
)

func TestPosition_StartOfFile(t *testing.T) {
	src := source.Normalize([]byte("abc\ndef"))
	line, col := Position(src, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func TestPosition_AfterNewline(t *testing.T) {
	src := source.Normalize([]byte("abc\ndef"))
	line, col := Position(src, 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestPosition_MidLine(t *testing.T) {
	src := source.Normalize([]byte("abc\ndef"))
	line, col := Position(src, 6)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
}

func TestPosition_ClampsPastEnd(t *testing.T) {
	src := source.Normalize([]byte("abc\ndef\n"))
	line, col := Position(src, 1000)
	assert.Equal(t, 3, line)
	assert.Equal(t, 1, col)
}
