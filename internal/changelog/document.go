package changelog

import "strings"

// DoNotEditMarker is the first line of every generated changelog.
const DoNotEditMarker = "<!-- Do not manually edit this file. Use the `sdk-lints update-changelog` command. -->"

// EmptyPendingTemplate replaces the queue after a publish. It is all
// comments, so it parses as an empty queue.
const EmptyPendingTemplate = `# Example changelog entries
# [[aws-sdk-rust]]
# message = "Fix typos in module documentation for generated crates"
# references = ["smithy-rs#920"]
# meta = { "breaking" = false, "tada" = false, "bug" = false }
# author = "rcoh"
#
# [[smithy-rs]]
# message = "Fix typos in module documentation for generated crates"
# references = ["smithy-rs#920"]
# meta = { "breaking" = false, "tada" = false, "bug" = false }
# author = "rcoh"
`

// Prepend inserts a rendered section ahead of every release already in doc.
// A leading marker line stays first.
func Prepend(doc, section string) string {
	if rest, ok := strings.CutPrefix(doc, DoNotEditMarker); ok {
		rest = strings.TrimPrefix(rest, "\r\n")
		rest = strings.TrimPrefix(rest, "\n")
		return DoNotEditMarker + "\n" + section + rest
	}
	return section + doc
}

// NewDocument returns the content of a changelog that does not exist yet.
func NewDocument(section string) string {
	return DoNotEditMarker + "\n" + section
}
