package pattern

import (
	"fmt"
	"strings"
)

// QuoteStyle tells Preprocess which runes open/close a string-literal
// region in the target dialect. Metavariable syntax found inside such a
// region is left untouched: it must survive preprocessing verbatim so the
// embedded string-pattern matcher (spec.md §4.6) can find it later as
// ":[NAME]" text inside the parsed string-literal leaf.
type QuoteStyle struct {
	Open, Close byte
	Escape      byte // 0 disables escape handling
}

// Preprocess rewrites every `:[NAME]`, `:[...NAME]`, `:[...]`/`:[_]`
// occurrence found OUTSIDE any of the given quoted regions into a bare
// placeholder identifier the target grammar can parse as an ordinary
// token. It returns the rewritten source; adapters hand this to the
// tree-sitter parser instead of the original pattern text.
func Preprocess(src string, quotes []QuoteStyle) (string, error) {
	var out strings.Builder
	i := 0
	n := len(src)
	for i < n {
		if q, width := matchQuoteOpen(src, i, quotes); width > 0 {
			end := scanQuoteClose(src, i+1, q)
			out.WriteString(src[i:end])
			i = end
			continue
		}
		if src[i] == ':' && i+1 < n && src[i+1] == '[' {
			token, rest, err := scanToken(src, i)
			if err != nil {
				return "", err
			}
			out.WriteString(token)
			i = rest
			continue
		}
		out.WriteByte(src[i])
		i++
	}
	return out.String(), nil
}

func matchQuoteOpen(src string, i int, quotes []QuoteStyle) (QuoteStyle, int) {
	for _, q := range quotes {
		if src[i] == q.Open {
			return q, 1
		}
	}
	return QuoteStyle{}, 0
}

func scanQuoteClose(src string, i int, q QuoteStyle) int {
	n := len(src)
	for i < n {
		if q.Escape != 0 && src[i] == q.Escape && i+1 < n {
			i += 2
			continue
		}
		if src[i] == q.Close {
			return i + 1
		}
		i++
	}
	return n
}

// scanToken parses one ":[...]"-shaped token starting at src[start] == ':'
// and returns its placeholder replacement plus the index just past ']'.
func scanToken(src string, start int) (string, int, error) {
	close := strings.IndexByte(src[start:], ']')
	if close < 0 {
		return "", 0, fmt.Errorf("pattern: unterminated metavariable token at byte %d", start)
	}
	end := start + close + 1
	inner := src[start+2 : start+close] // between "[" and "]"

	switch {
	case inner == "" || inner == "_":
		return anonymousEllipsisPlaceholder(), end, nil
	case strings.HasPrefix(inner, "..."):
		name := strings.TrimPrefix(inner, "...")
		if name == "" {
			return anonymousEllipsisPlaceholder(), end, nil
		}
		if !ValidName(name) {
			return "", 0, fmt.Errorf("pattern: invalid ellipsis-metavariable name %q", name)
		}
		return ellipsisMVPlaceholder(name), end, nil
	default:
		if !ValidName(inner) {
			return "", 0, fmt.Errorf("pattern: invalid metavariable name %q", inner)
		}
		return metavariablePlaceholder(inner), end, nil
	}
}
