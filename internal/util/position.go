// Package util holds small ambient helpers shared by cmd/sgrep and
// store: byte-offset-to-row/col resolution (spec.md §8's "position
// fidelity" testable property) and unified-diff rendering.
//
// Unlike the teacher's internal/util/remap.go — which remaps indices
// between two differently-normalized strings via a byte-index
// translation table, because its normalization can rewrite arbitrary
// byte ranges — source.Normalize only ever appends a single trailing
// byte. There is nothing to remap: any offset into the normalized
// source below NormalizedSource.Len() already denotes the same byte in
// the original. Position resolves it to a human-facing row/col instead.
package util

import "github.com/oxhq/sgrep/source"

// Position resolves a byte offset into a 1-indexed (line, column) pair,
// counting '\n' bytes in the normalized source up to offset.
func Position(src source.NormalizedSource, offset int) (line, col int) {
	line, col = 1, 1
	text := src.Bytes()
	if offset > len(text) {
		offset = len(text)
	}
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
