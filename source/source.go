// Package source implements the Source Normalizer: it converts raw input
// bytes into a canonical form that every downstream layer (CST, Pattern,
// rewriter) can index by byte offset without special-casing a missing
// trailing newline.
package source

// NormalizedSource wraps source bytes that are guaranteed to end in a
// newline. If the caller's input didn't, one was appended, and that fact
// is tracked so the synthesized byte never leaks into a capture, a diff,
// or a splice.
type NormalizedSource struct {
	raw          []byte
	appendedByte bool
}

// Normalize produces a NormalizedSource from raw bytes. Empty input and
// input already ending in '\n' are stored unchanged.
func Normalize(raw []byte) NormalizedSource {
	if len(raw) == 0 || raw[len(raw)-1] == '\n' {
		return NormalizedSource{raw: raw}
	}
	buf := make([]byte, len(raw)+1)
	copy(buf, raw)
	buf[len(raw)] = '\n'
	return NormalizedSource{raw: buf, appendedByte: true}
}

// NormalizeString is a convenience wrapper over Normalize.
func NormalizeString(s string) NormalizedSource {
	return Normalize([]byte(s))
}

// ExtraNewlineAppended reports whether Normalize synthesized the trailing
// newline rather than finding one already present.
func (n NormalizedSource) ExtraNewlineAppended() bool {
	return n.appendedByte
}

// Len returns the length callers should treat as "the end of the source" —
// the synthesized byte is excluded.
func (n NormalizedSource) Len() int {
	if n.appendedByte {
		return len(n.raw) - 1
	}
	return len(n.raw)
}

// Bytes returns the normalized bytes, including the synthesized newline if
// any — this is what must be handed to a tree-sitter parser, since the
// grammars expect a terminating newline.
func (n NormalizedSource) Bytes() []byte {
	return n.raw
}

// At returns the slice [start:end) of the normalized bytes, clipping end
// down to Len() whenever the requested range would otherwise expose the
// synthesized trailing byte.
func (n NormalizedSource) At(start, end int) []byte {
	if n.appendedByte && end > n.Len() {
		end = n.Len()
	}
	if start > end {
		start = end
	}
	return n.raw[start:end]
}

// TextAt is At as a string.
func (n NormalizedSource) TextAt(start, end int) string {
	return string(n.At(start, end))
}
