package lints

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/ariel-frischer/sdk-lints/internal/lint"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
)

// ReadmesExist requires a README.md in every runtime crate.
type ReadmesExist struct{}

func (ReadmesExist) Name() string { return "readme-existence" }

func (l ReadmesExist) CheckAll(ctx context.Context, ws *workspace.Workspace) ([]lint.Violation, error) {
	crates, err := ws.RuntimeCrates()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Name(), err)
	}

	var violations []lint.Violation
	for _, crate := range crates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		readme := path.Join(crate, "README.md")
		_, err := os.Stat(ws.Abs(readme))
		switch {
		case err == nil:
		case os.IsNotExist(err):
			violations = append(violations, lint.Violation{Lint: l.Name(), Path: readme, Message: "crate is missing a README"})
		default:
			violations = append(violations, lint.Violation{Lint: l.Name(), Path: readme, Message: fmt.Sprintf("failed to stat README: %v", err)})
		}
	}
	return violations, nil
}

// ReadmeFooter keeps the anchored footer section of every crate README in
// sync with the configured footer.
type ReadmeFooter struct {
	Footer string
}

func (ReadmeFooter) Name() string { return "readme-footer" }

// Files lists the READMEs that exist. Missing ones are reported by
// ReadmesExist.
func (ReadmeFooter) Files(ws *workspace.Workspace) ([]string, error) {
	crates, err := ws.RuntimeCrates()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, crate := range crates {
		readme := path.Join(crate, "README.md")
		if _, err := os.Stat(ws.Abs(readme)); err == nil {
			files = append(files, readme)
		}
	}
	return files, nil
}

func (l ReadmeFooter) FixFile(_ string, current []byte) (lint.FixResult, error) {
	updated, _, err := lint.ReplaceAnchor(string(current), lint.MarkdownAnchors("footer"), "\n"+l.Footer+"\n")
	if err != nil {
		return lint.FixResult{}, err
	}
	return lint.FixResult{Content: []byte(updated), Reason: "README footer is missing or out of date"}, nil
}
