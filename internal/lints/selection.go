// Package lints holds the concrete repository hygiene rules and maps the
// command-line selection onto them.
package lints

import (
	"github.com/ariel-frischer/sdk-lints/internal/config"
	"github.com/ariel-frischer/sdk-lints/internal/lint"
)

// Selection is the set of lint categories a command runs.
type Selection struct {
	Readme       bool
	CargoToml    bool
	DocsMetadata bool
	Changelog    bool
	License      bool
	Todos        bool
}

// All selects every category.
func All() Selection {
	return Selection{
		Readme:       true,
		CargoToml:    true,
		DocsMetadata: true,
		Changelog:    true,
		License:      true,
		Todos:        true,
	}
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s == Selection{}
}

// Checkers returns the checks for the selection in a fixed order.
func Checkers(sel Selection, cfg *config.Configuration) []lint.Checker {
	var out []lint.Checker
	if sel.Readme {
		out = append(out,
			ReadmesExist{},
			lint.CheckFixable(ReadmeFooter{Footer: cfg.Readme.Footer}),
		)
	}
	if sel.CargoToml {
		out = append(out,
			lint.CheckFiles(CrateAuthor{Authors: cfg.Crate.Authors}),
			lint.CheckFiles(CrateLicense{License: cfg.Crate.License}),
		)
	}
	if sel.DocsMetadata {
		out = append(out, lint.CheckFixable(DocsRs{Metadata: cfg.DocsRs.Metadata}))
	}
	if sel.License {
		out = append(out, lint.CheckFiles(CopyrightHeader{cfg.Copyright}))
	}
	if sel.Changelog {
		out = append(out, ChangelogNext{Path: cfg.Changelog.Pending})
	}
	if sel.Todos {
		out = append(out, lint.CheckFiles(TodoContext{cfg.Todos}))
	}
	return out
}

// Fixers returns the fixes for the selection. Only the README footer and
// docs.rs metadata can be corrected automatically; other categories are
// ignored.
func Fixers(sel Selection, cfg *config.Configuration) []lint.Fixer {
	var out []lint.Fixer
	if sel.Readme {
		out = append(out, lint.FixFiles(ReadmeFooter{Footer: cfg.Readme.Footer}))
	}
	if sel.DocsMetadata {
		out = append(out, lint.FixFiles(DocsRs{Metadata: cfg.DocsRs.Metadata}))
	}
	return out
}
