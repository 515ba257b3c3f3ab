package lints

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ariel-frischer/sdk-lints/internal/changelog"
	"github.com/ariel-frischer/sdk-lints/internal/lint"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
)

// ChangelogNext requires the pending changelog to exist and every queued
// entry to be valid. Each invalid entry is its own violation.
type ChangelogNext struct {
	// Path is repository-relative.
	Path string
}

func (ChangelogNext) Name() string { return "changelog-pending-entries" }

func (l ChangelogNext) CheckAll(_ context.Context, ws *workspace.Workspace) ([]lint.Violation, error) {
	_, err := changelog.LoadPending(ws.Abs(l.Path))
	if err == nil {
		return nil, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return []lint.Violation{{Lint: l.Name(), Path: l.Path, Message: "pending changelog is missing"}}, nil
	}

	var verrs changelog.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]lint.Violation, len(verrs))
		for i, v := range verrs {
			out[i] = lint.Violation{Lint: l.Name(), Path: l.Path, Message: v.Error()}
		}
		return out, nil
	}
	return []lint.Violation{{Lint: l.Name(), Path: l.Path, Message: fmt.Sprintf("invalid pending changelog: %v", err)}}, nil
}
