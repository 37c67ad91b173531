package pattern

import "regexp"

// Placeholder identifiers stand in for metavariable syntax during the
// preprocessing pass described in SPEC_FULL.md §5: no bundled grammar
// recognizes ":[NAME]" directly, so lang.ParsePattern (via Preprocess)
// rewrites pattern source
// into something the plain target grammar accepts, then this package
// reclassifies the resulting leaves by shape.
//
// Each placeholder is a valid bare identifier in all three shipped
// dialects (Go, HCL, Dockerfile words are all `[A-Za-z_][A-Za-z0-9_]*`
// supersets), prefixed distinctively enough that real source is most
// unlikely to collide with one by accident.
const (
	metaPrefix     = "Zzsgrepmv_"
	ellipsisMVPref = "Zzsgrepev_"
	anonEllipsis   = "Zzsgrepellipsis"
)

var nameRe = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

// ValidName reports whether s is a legal metavariable identifier
// (spec.md §3: `[A-Z_][A-Z0-9_]*`).
func ValidName(s string) bool { return nameRe.MatchString(s) }

func metavariablePlaceholder(name string) string   { return metaPrefix + name }
func ellipsisMVPlaceholder(name string) string     { return ellipsisMVPref + name }
func anonymousEllipsisPlaceholder() string         { return anonEllipsis }

var (
	metaPlaceholderRe   = regexp.MustCompile(`^` + metaPrefix + `([A-Z_][A-Z0-9_]*)$`)
	ellipsisMVPlaceholderRe = regexp.MustCompile(`^` + ellipsisMVPref + `([A-Z_][A-Z0-9_]*)$`)
)

// classify inspects a leaf's own text and reports the pattern-only kind it
// represents, if any. ClassifyLeaf calls this for each pattern leaf while
// lang wraps tree-sitter nodes.
func classify(text string) (kind int, id string, ok bool) {
	if text == anonEllipsis {
		return kindEllipsis, "", true
	}
	if m := metaPlaceholderRe.FindStringSubmatch(text); m != nil {
		return kindMetavariable, m[1], true
	}
	if m := ellipsisMVPlaceholderRe.FindStringSubmatch(text); m != nil {
		return kindEllipsisMV, m[1], true
	}
	return 0, "", false
}

const (
	kindMetavariable = iota + 1
	kindEllipsisMV
	kindEllipsis
)
