// Package testutil provides test helpers shared by sdk-lints packages.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a throwaway git repository with one commit.
type Repo struct {
	t    *testing.T
	Root string
	wt   *gogit.Worktree
}

// NewRepo commits files (slash paths to content) into a fresh repository
// under t.TempDir. User-level config is isolated so only defaults and the
// repository's own files apply.
func NewRepo(t *testing.T, files map[string]string) *Repo {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	repo, err := gogit.PlainInit(root, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("open worktree: %v", err)
	}

	r := &Repo{t: t, Root: root, wt: wt}
	rels := make([]string, 0, len(files))
	for rel := range files {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		r.WriteFile(rel, files[rel])
		if _, err := wt.Add(rel); err != nil {
			t.Fatalf("stage %s: %v", rel, err)
		}
	}

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author:            &object.Signature{Name: "Test", Email: "test@example.com"},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return r
}

// WriteFile writes content at the slash path rel, creating parents.
func (r *Repo) WriteFile(rel, content string) {
	r.t.Helper()
	p := r.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		r.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", rel, err)
	}
}

// Path returns the absolute path of rel.
func (r *Repo) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// Snapshot maps every file outside .git to its content.
func (r *Repo) Snapshot() map[string]string {
	r.t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(r.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(r.Root, p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		r.t.Fatalf("snapshot: %v", err)
	}
	return out
}
