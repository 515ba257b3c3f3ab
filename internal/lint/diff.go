package lint

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a git-style unified diff between two versions of path.
// It returns "" when the versions are equal or the diff cannot be produced.
func UnifiedDiff(path string, before, after []byte) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}
