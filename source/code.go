package source

// Code wraps a NormalizedSource as the target of a splice (spec.md
// §4.9): given a matched area's byte range and a replacement snippet, it
// produces the rewritten source as before(area) + snippet + after(area).
type Code struct {
	Src NormalizedSource
}

// NewCode wraps an already-normalized source.
func NewCode(src NormalizedSource) Code { return Code{Src: src} }

// Rewrite splices snippet in place of the byte range [start, end),
// clipping end down to Src.Len() exactly as At does, so a match that
// runs up to the synthesized trailing newline never pulls that byte into
// the result.
func (c Code) Rewrite(start, end int, snippet string) string {
	if end > c.Src.Len() {
		end = c.Src.Len()
	}
	if start > end {
		start = end
	}
	before := c.Src.TextAt(0, start)
	after := c.Src.TextAt(end, c.Src.Len())
	return before + snippet + after
}
