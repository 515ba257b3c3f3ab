package lint

import (
	"fmt"
	"strings"
)

// Anchors delimit a generated section inside a hand-written file.
type Anchors struct {
	Start string
	End   string
}

// MarkdownAnchors returns HTML comment anchors for Markdown files.
func MarkdownAnchors(name string) Anchors {
	return Anchors{
		Start: fmt.Sprintf("<!-- anchor_start:%s -->", name),
		End:   fmt.Sprintf("<!-- anchor_end:%s -->", name),
	}
}

// TomlAnchors returns comment anchors for TOML files.
func TomlAnchors(name string) Anchors {
	return Anchors{
		Start: "# anchor_start:" + name,
		End:   "# anchor_end:" + name,
	}
}

// ReplaceAnchor replaces the text between the anchors with content. When the
// file has no anchors yet, the anchored section is appended at the end.
// An end anchor without a start anchor (or the reverse) is an error.
func ReplaceAnchor(haystack string, a Anchors, content string) (string, bool, error) {
	start := strings.Index(haystack, a.Start)
	if start < 0 {
		if strings.Contains(haystack, a.End) {
			return haystack, false, fmt.Errorf("found end anchor %q but no start anchor", a.End)
		}
		var b strings.Builder
		b.WriteString(haystack)
		b.WriteString("\n")
		b.WriteString(a.Start)
		b.WriteString(content)
		b.WriteString(a.End)
		b.WriteString("\n")
		return b.String(), true, nil
	}

	bodyStart := start + len(a.Start)
	end := strings.Index(haystack[bodyStart:], a.End)
	if end < 0 {
		return haystack, false, fmt.Errorf("expected matching end anchor %q", a.End)
	}
	end += bodyStart

	out := haystack[:bodyStart] + content + haystack[end:]
	return out, out != haystack, nil
}

// StripAnchored returns haystack with the anchored section (anchors
// included) removed. Files without a complete section come back unchanged.
func StripAnchored(haystack string, a Anchors) string {
	start := strings.Index(haystack, a.Start)
	if start < 0 {
		return haystack
	}
	end := strings.Index(haystack[start:], a.End)
	if end < 0 {
		return haystack
	}
	end += start + len(a.End)
	return haystack[:start] + haystack[end:]
}
