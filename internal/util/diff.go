package util

import "github.com/pmezard/go-difflib/difflib"

// UnifiedDiff renders a unified diff between before and after, grounded
// in the teacher's providers/base/provider.go generateDiff.
func UnifiedDiff(before, after, fromFile, toFile string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
