package changelog

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// RenderOptions controls how entries are written.
type RenderOptions struct {
	// ReferenceURL is a fmt template taking the repository and the issue
	// number, e.g. https://github.com/awslabs/%s/issues/%s.
	ReferenceURL string
	// Maintainers are not credited with @mentions or listed as contributors.
	Maintainers []string
}

func (o RenderOptions) isMaintainer(author string) bool {
	for _, m := range o.Maintainers {
		if strings.EqualFold(m, author) {
			return true
		}
	}
	return false
}

// ReleaseSection is one version's worth of entries for a single target,
// grouped by category.
type ReleaseSection struct {
	Version string
	Date    string
	Groups  map[Category][]Entry
}

// NewReleaseSection classifies entries, preserving their relative order
// within each category. Version and date are used verbatim.
func NewReleaseSection(version, date string, entries []Entry) *ReleaseSection {
	s := &ReleaseSection{Version: version, Date: date, Groups: make(map[Category][]Entry)}
	for _, e := range entries {
		c := CategoryOf(e)
		s.Groups[c] = append(s.Groups[c], e)
	}
	return s
}

// IsEmpty returns true if the section has no entries.
func (s *ReleaseSection) IsEmpty() bool {
	for _, entries := range s.Groups {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// Entries returns the section's entries in render order.
func (s *ReleaseSection) Entries() []Entry {
	var out []Entry
	for _, c := range Categories {
		out = append(out, s.Groups[c]...)
	}
	return out
}

// Render writes the section as Markdown:
//
//	0.2.0 (2024-01-01)
//	==================
//	**Bug fixes:**
//	- :bug: ([aws-sdk-rust#1](https://...)) Fix retry bug
//
// Empty categories are omitted. Entries by non-maintainers are credited in a
// trailing contributors list. The result ends with a blank line.
func (s *ReleaseSection) Render(opts RenderOptions) string {
	var b strings.Builder

	title := fmt.Sprintf("%s (%s)", s.Version, s.Date)
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)))
	b.WriteString("\n")

	for _, c := range Categories {
		entries := s.Groups[c]
		if len(entries) == 0 {
			continue
		}
		b.WriteString(c.Heading())
		b.WriteString("\n")
		for _, e := range entries {
			renderEntry(&b, e, opts)
		}
		b.WriteString("\n")
	}

	renderContributors(&b, s.Entries(), opts)
	return b.String()
}

func renderEntry(b *strings.Builder, e Entry, opts RenderOptions) {
	var meta string
	if e.Meta != nil {
		if e.Meta.Bug {
			meta += ":bug:"
		}
		if e.Meta.Breaking {
			meta += ":warning:"
		}
		if e.Meta.Tada {
			meta += ":tada:"
		}
	}
	if meta != "" {
		meta += " "
	}

	refs := referenceLinks(e.References, opts)
	if !opts.isMaintainer(e.Author) {
		refs = append(refs, "@"+e.Author)
	}
	if len(refs) > 0 {
		meta += "(" + strings.Join(refs, ", ") + ") "
	}

	fmt.Fprintf(b, "- %s%s\n", meta, indentMessage(e.Message))
}

// indentMessage keeps continuation lines of a multi-line message inside the
// list item.
func indentMessage(message string) string {
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = "    " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func referenceLinks(refs []string, opts RenderOptions) []string {
	links := make([]string, 0, len(refs))
	for _, ref := range refs {
		links = append(links, referenceLink(ref, opts))
	}
	return links
}

// referenceLink renders repo#123 as a Markdown link. References that do not
// have that shape are written as plain text.
func referenceLink(ref string, opts RenderOptions) string {
	repo, number, ok := strings.Cut(ref, "#")
	if !ok || opts.ReferenceURL == "" {
		return ref
	}
	url := fmt.Sprintf(opts.ReferenceURL, repo, number)
	return "[" + ref + "](" + url + ")"
}

// renderContributors lists non-maintainer authors in order of first
// appearance, each with the references of all their entries.
func renderContributors(b *strings.Builder, entries []Entry, opts RenderOptions) {
	var authors []string
	refsByAuthor := make(map[string][]string)
	for _, e := range entries {
		if opts.isMaintainer(e.Author) {
			continue
		}
		if _, seen := refsByAuthor[e.Author]; !seen {
			authors = append(authors, e.Author)
			refsByAuthor[e.Author] = []string{}
		}
		for _, ref := range e.References {
			if !slices.Contains(refsByAuthor[e.Author], ref) {
				refsByAuthor[e.Author] = append(refsByAuthor[e.Author], ref)
			}
		}
	}
	if len(authors) == 0 {
		return
	}

	b.WriteString("**Contributors**\n")
	b.WriteString("Thank you for your contributions! ❤\n")
	for _, author := range authors {
		links := referenceLinks(refsByAuthor[author], opts)
		fmt.Fprintf(b, "- @%s (%s)\n", author, strings.Join(links, ", "))
	}
	b.WriteString("\n")
}
