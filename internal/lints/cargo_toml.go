package lints

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ariel-frischer/sdk-lints/internal/lint"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
	"github.com/pelletier/go-toml/v2"
)

// docsRsTable is the table header the docs.rs block defines.
const docsRsTable = "[package.metadata.docs.rs]"

// manifest holds the Cargo.toml fields the lints read.
type manifest struct {
	Package struct {
		Name    string   `toml:"name"`
		Authors []string `toml:"authors"`
		License string   `toml:"license"`
	} `toml:"package"`
}

func parseManifest(content []byte) (*manifest, error) {
	var m manifest
	if err := toml.Unmarshal(content, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// cargoTomls is the file set shared by the manifest lints.
func cargoTomls(ws *workspace.Workspace) ([]string, error) {
	return ws.CargoTomls()
}

// CrateAuthor requires every configured author in package.authors.
type CrateAuthor struct {
	Authors []string
}

func (CrateAuthor) Name() string { return "crate-author" }

func (CrateAuthor) Files(ws *workspace.Workspace) ([]string, error) { return cargoTomls(ws) }

func (l CrateAuthor) CheckFile(_ string, content []byte) []string {
	m, err := parseManifest(content)
	if err != nil {
		return []string{fmt.Sprintf("failed to parse Cargo.toml: %v", err)}
	}
	var msgs []string
	for _, author := range l.Authors {
		if !slices.Contains(m.Package.Authors, author) {
			msgs = append(msgs, fmt.Sprintf("missing author %q in package.authors", author))
		}
	}
	return msgs
}

// CrateLicense requires package.license to equal the configured license.
type CrateLicense struct {
	License string
}

func (CrateLicense) Name() string { return "crate-license" }

func (CrateLicense) Files(ws *workspace.Workspace) ([]string, error) { return cargoTomls(ws) }

func (l CrateLicense) CheckFile(_ string, content []byte) []string {
	m, err := parseManifest(content)
	if err != nil {
		return []string{fmt.Sprintf("failed to parse Cargo.toml: %v", err)}
	}
	if m.Package.License != l.License {
		return []string{fmt.Sprintf("incorrect license: expected %q, found %q", l.License, m.Package.License)}
	}
	return nil
}

// DocsRs keeps the anchored docs.rs metadata block of every runtime
// Cargo.toml in sync with the configured block.
type DocsRs struct {
	Metadata string
}

func (DocsRs) Name() string { return "docs-metadata" }

func (DocsRs) Files(ws *workspace.Workspace) ([]string, error) { return cargoTomls(ws) }

func (l DocsRs) FixFile(_ string, current []byte) (lint.FixResult, error) {
	anchors := lint.TomlAnchors("docsrs")

	// A hand-written table outside the anchors would be duplicated.
	if strings.Contains(lint.StripAnchored(string(current), anchors), docsRsTable) {
		return lint.FixResult{
			Content:   current,
			Unfixable: []string{docsRsTable + " is defined outside the docs.rs anchors; remove it so it can be managed"},
		}, nil
	}

	updated, _, err := lint.ReplaceAnchor(string(current), anchors, "\n"+strings.TrimSpace(l.Metadata)+"\n")
	if err != nil {
		return lint.FixResult{}, err
	}
	if updated != string(current) {
		var parsed map[string]any
		if err := toml.Unmarshal([]byte(updated), &parsed); err != nil {
			return lint.FixResult{}, fmt.Errorf("updated Cargo.toml would not parse: %w", err)
		}
	}
	return lint.FixResult{Content: []byte(updated), Reason: "docs.rs metadata is missing or out of date"}, nil
}
