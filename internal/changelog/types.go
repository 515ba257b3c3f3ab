// Package changelog publishes the pending release notes queued in
// CHANGELOG.next.toml into the two versioned Markdown changelogs: one for
// the smithy-rs code generator and one for the AWS SDK for Rust.
//
// Publishing is one transaction. The queue is loaded and validated before
// anything is written, every output is staged, and the documents and the
// cleared queue are renamed into place together.
package changelog

// Target names the changelog an entry is published to. It is also the TOML
// array-of-tables key the entry is queued under.
type Target string

const (
	TargetSmithy Target = "smithy-rs"
	TargetSDK    Target = "aws-sdk-rust"
)

// Targets lists every known target in publish order.
var Targets = []Target{TargetSmithy, TargetSDK}

// Meta classifies an entry.
type Meta struct {
	Breaking bool `toml:"breaking"`
	Tada     bool `toml:"tada"`
	Bug      bool `toml:"bug"`
}

// Entry is one pending release note.
type Entry struct {
	Message    string   `toml:"message" validate:"required,notblank"`
	Author     string   `toml:"author" validate:"required,notblank"`
	References []string `toml:"references" validate:"required,min=1,dive,reference"`
	Meta       *Meta    `toml:"meta" validate:"required"`

	// Target is filled in from the table the entry was read from.
	Target Target `toml:"-"`
}

// Pending is the decoded queue. Entries keep their file order.
type Pending struct {
	Smithy []Entry `toml:"smithy-rs"`
	SDK    []Entry `toml:"aws-sdk-rust"`
}

// Entries returns the queued entries for target.
func (p *Pending) Entries(target Target) []Entry {
	switch target {
	case TargetSmithy:
		return p.Smithy
	case TargetSDK:
		return p.SDK
	}
	return nil
}

// Len returns the number of queued entries across both targets.
func (p *Pending) Len() int {
	return len(p.Smithy) + len(p.SDK)
}

// IsEmpty returns true if nothing is queued.
func (p *Pending) IsEmpty() bool {
	return p.Len() == 0
}

// Category is the section of a release an entry is listed under.
type Category int

const (
	Breaking Category = iota
	NewFeature
	BugFix
	Other
)

// Categories lists every category in render order.
var Categories = []Category{Breaking, NewFeature, BugFix, Other}

// Heading returns the bold Markdown heading for the category.
func (c Category) Heading() string {
	switch c {
	case Breaking:
		return "**Breaking Changes:**"
	case NewFeature:
		return "**New this release:**"
	case BugFix:
		return "**Bug fixes:**"
	default:
		return "**Other changes:**"
	}
}

func (c Category) String() string {
	switch c {
	case Breaking:
		return "breaking"
	case NewFeature:
		return "new-feature"
	case BugFix:
		return "bug-fix"
	default:
		return "other"
	}
}

// CategoryOf classifies an entry. An entry with several flags goes to the
// first matching category: breaking, then new feature, then bug fix.
func CategoryOf(e Entry) Category {
	if e.Meta == nil {
		return Other
	}
	switch {
	case e.Meta.Breaking:
		return Breaking
	case e.Meta.Tada:
		return NewFeature
	case e.Meta.Bug:
		return BugFix
	}
	return Other
}
