// Package lint defines the two lint capabilities, Check and Fix, and the
// runner that executes a selection of them over a workspace.
//
// Problems are always returned as Violation values so that one pass can
// collect every problem across every file. Only failures that prevent a
// lint from obtaining its file set are returned as errors.
package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/sdk-lints/internal/fileio"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
)

// Mode selects whether a Fix writes its corrections.
type Mode int

const (
	// DryRun computes corrections and reports them without writing.
	DryRun Mode = iota
	// Persist writes corrections to disk.
	Persist
)

// ModeFromDryRun maps the --dry-run flag to a Mode.
func ModeFromDryRun(dryRun bool) Mode {
	if dryRun {
		return DryRun
	}
	return Persist
}

func (m Mode) String() string {
	if m == DryRun {
		return "dry-run"
	}
	return "persist"
}

// Violation is one reported instance of a lint rule being unmet.
type Violation struct {
	Lint    string `yaml:"lint"`
	Path    string `yaml:"path,omitempty"`
	Message string `yaml:"message"`
	// Suggestion is an optional unified diff of the proposed correction.
	Suggestion string `yaml:"suggestion,omitempty"`
	// Fixed is set by fixes when the correction was computed (and, in
	// Persist mode, written). Checks never set it.
	Fixed bool `yaml:"fixed"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return fmt.Sprintf("[%s] %s", v.Lint, v.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Lint, v.Path, v.Message)
}

// Checker is a read-only lint.
type Checker interface {
	Name() string
	CheckAll(ctx context.Context, ws *workspace.Workspace) ([]Violation, error)
}

// Fixer is a lint that can correct what it finds.
type Fixer interface {
	Name() string
	FixAll(ctx context.Context, ws *workspace.Workspace, mode Mode) ([]Violation, error)
}

// FileChecker is a lint that works one file at a time.
type FileChecker interface {
	Name() string
	// Files returns the repository-relative paths the lint inspects.
	Files(ws *workspace.Workspace) ([]string, error)
	// CheckFile returns one message per problem found in content.
	CheckFile(path string, content []byte) []string
}

// FixResult is the outcome of fixing a single file.
type FixResult struct {
	// Content is the corrected file. Equal to the input when nothing changes.
	Content []byte
	// Reason describes what the correction does.
	Reason string
	// Unfixable lists problems that cannot be corrected automatically.
	// When non-empty the file is left alone.
	Unfixable []string
}

// FileFixer is a lint that corrects one file at a time.
type FileFixer interface {
	Name() string
	Files(ws *workspace.Workspace) ([]string, error)
	FixFile(path string, current []byte) (FixResult, error)
}

// CheckFiles adapts a FileChecker to Checker.
func CheckFiles(fc FileChecker) Checker {
	return fileChecker{fc}
}

type fileChecker struct {
	FileChecker
}

func (c fileChecker) CheckAll(ctx context.Context, ws *workspace.Workspace) ([]Violation, error) {
	files, err := c.Files(ws)
	if err != nil {
		return nil, fmt.Errorf("%s: listing files: %w", c.Name(), err)
	}

	var violations []Violation
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(ws.Abs(path))
		if err != nil {
			violations = append(violations, readViolation(c.Name(), path, err))
			continue
		}
		for _, msg := range c.CheckFile(path, content) {
			violations = append(violations, Violation{Lint: c.Name(), Path: path, Message: msg})
		}
	}
	return violations, nil
}

// FixFiles adapts a FileFixer to Fixer.
func FixFiles(ff FileFixer) Fixer {
	return fileFixer{ff}
}

type fileFixer struct {
	FileFixer
}

func (f fileFixer) FixAll(ctx context.Context, ws *workspace.Workspace, mode Mode) ([]Violation, error) {
	files, err := f.Files(ws)
	if err != nil {
		return nil, fmt.Errorf("%s: listing files: %w", f.Name(), err)
	}

	var violations []Violation
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		violations = append(violations, f.fixOne(ws, path, mode)...)
	}
	return violations, nil
}

func (f fileFixer) fixOne(ws *workspace.Workspace, path string, mode Mode) []Violation {
	abs := ws.Abs(path)
	current, err := os.ReadFile(abs)
	if err != nil {
		return []Violation{readViolation(f.Name(), path, err)}
	}

	res, err := f.FixFile(path, current)
	if err != nil {
		return []Violation{{Lint: f.Name(), Path: path, Message: err.Error()}}
	}
	if len(res.Unfixable) > 0 {
		out := make([]Violation, len(res.Unfixable))
		for i, msg := range res.Unfixable {
			out[i] = Violation{Lint: f.Name(), Path: path, Message: msg}
		}
		return out
	}
	if bytes.Equal(current, res.Content) {
		return nil
	}

	v := Violation{
		Lint:       f.Name(),
		Path:       path,
		Message:    res.Reason,
		Suggestion: UnifiedDiff(path, current, res.Content),
		Fixed:      true,
	}
	if mode == Persist {
		if err := fileio.WriteFile(abs, res.Content); err != nil {
			v.Fixed = false
			v.Message = fmt.Sprintf("%s (failed to write fix: %v)", res.Reason, fileError(err))
		} else {
			ws.Log.Debugf("%s: fixed %s", f.Name(), path)
		}
	}
	return []Violation{v}
}

// CheckFixable turns a FileFixer into a read-only check that reports every
// file the fix would change, with the would-be diff as the suggestion.
func CheckFixable(ff FileFixer) Checker {
	return fixableChecker{ff}
}

type fixableChecker struct {
	FileFixer
}

func (c fixableChecker) CheckAll(ctx context.Context, ws *workspace.Workspace) ([]Violation, error) {
	files, err := c.Files(ws)
	if err != nil {
		return nil, fmt.Errorf("%s: listing files: %w", c.Name(), err)
	}

	var violations []Violation
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current, err := os.ReadFile(ws.Abs(path))
		if err != nil {
			violations = append(violations, readViolation(c.Name(), path, err))
			continue
		}
		res, err := c.FixFile(path, current)
		if err != nil {
			violations = append(violations, Violation{Lint: c.Name(), Path: path, Message: err.Error()})
			continue
		}
		for _, msg := range res.Unfixable {
			violations = append(violations, Violation{Lint: c.Name(), Path: path, Message: msg})
		}
		if len(res.Unfixable) == 0 && !bytes.Equal(current, res.Content) {
			violations = append(violations, Violation{
				Lint:       c.Name(),
				Path:       path,
				Message:    res.Reason,
				Suggestion: UnifiedDiff(path, current, res.Content),
			})
		}
	}
	return violations, nil
}

func readViolation(lint, path string, err error) Violation {
	return Violation{Lint: lint, Path: path, Message: fmt.Sprintf("failed to read file: %v", fileError(err))}
}

// fileError strips the OS path from err. Violations already carry the
// repository-relative path, and reports must not depend on the checkout
// location.
func fileError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}
