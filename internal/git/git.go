// Package git provides the repository root and the in-scope file inventory
// (files tracked at HEAD plus files modified in the working tree). It uses the
// go-git library by default and can fall back to the git CLI, which is also
// used when go-git cannot open the repository (for example linked worktrees).
package git

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Provenance records why a file is in scope.
type Provenance int

const (
	// Tracked files are part of the HEAD tree and unchanged in the worktree.
	Tracked Provenance = iota
	// Modified files differ from HEAD in the worktree or the index.
	Modified
)

// String returns the provenance name.
func (p Provenance) String() string {
	if p == Modified {
		return "modified"
	}
	return "tracked"
}

// File is a repository-relative, slash-separated path plus its provenance.
type File struct {
	Path       string
	Provenance Provenance
}

// Inventory lists the files considered in scope for a run.
type Inventory interface {
	Files(ctx context.Context) ([]File, error)
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// FindRoot returns the absolute path of the repository enclosing dir (or the
// current directory when dir is empty). go-git is tried first, then
// `git rev-parse --show-toplevel`.
func FindRoot(ctx context.Context, dir string) (string, error) {
	repo, err := openRepo(dir)
	if err == nil {
		worktree, wtErr := repo.Worktree()
		if wtErr == nil {
			root := worktree.Filesystem.Root()
			logDebug("[git] FindRoot: %s", root)
			return root, nil
		}
		err = wtErr
	}

	logDebug("[git] go-git could not open repository (%v), trying git CLI", err)
	root, cliErr := NewCLIInventory(dir).Root(ctx)
	if cliErr != nil {
		return "", fmt.Errorf("%w (git CLI: %v)", err, cliErr)
	}
	return root, nil
}

// GoGitInventory lists files with go-git, without spawning processes.
type GoGitInventory struct {
	repo *git.Repository
}

// NewGoGitInventory opens the repository rooted at root.
func NewGoGitInventory(root string) (*GoGitInventory, error) {
	repo, err := openRepo(root)
	if err != nil {
		return nil, err
	}
	return &GoGitInventory{repo: repo}, nil
}

// Files returns every file in the HEAD tree plus every path that is staged
// or modified in the worktree. Files deleted from the worktree are left out.
func (g *GoGitInventory) Files(ctx context.Context) ([]File, error) {
	files := make(map[string]Provenance)

	if err := g.collectTracked(ctx, files); err != nil {
		return nil, err
	}
	if err := g.collectModified(files); err != nil {
		return nil, err
	}

	result := sortedFiles(files)
	logDebug("[git] GoGitInventory: %d files in scope", len(result))
	return result, nil
}

// collectTracked walks the HEAD tree (the equivalent of `git ls-tree -r HEAD`).
func (g *GoGitInventory) collectTracked(ctx context.Context, files map[string]Provenance) error {
	head, err := g.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD reference: %w", err)
	}

	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("loading HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("loading HEAD tree: %w", err)
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		files[f.Name] = Tracked
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking HEAD tree: %w", err)
	}
	return nil
}

// collectModified adds worktree and index changes (the equivalent of
// `git diff --name-only` plus staged additions).
func (g *GoGitInventory) collectModified(files map[string]Provenance) error {
	worktree, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("getting worktree status: %w", err)
	}

	for path, s := range status {
		switch {
		case s.Worktree == git.Deleted || s.Staging == git.Deleted:
			delete(files, path)
		case s.Worktree == git.Untracked:
			// untracked files are out of scope
		case s.Worktree != git.Unmodified || s.Staging != git.Unmodified:
			files[path] = Modified
		}
	}
	return nil
}

// sortedFiles converts the path set into a slice ordered by path.
func sortedFiles(files map[string]Provenance) []File {
	result := make([]File, 0, len(files))
	for path, provenance := range files {
		result = append(result, File{Path: path, Provenance: provenance})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}
