// Package workspace holds the repository metadata computed once per
// invocation: the repository root, the effective configuration and the
// in-scope file inventory. It is built explicitly with Load (or New in
// tests) and passed to the lint runner and the changelog engine.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/ariel-frischer/sdk-lints/internal/config"
	clierrors "github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/ariel-frischer/sdk-lints/internal/git"
	"github.com/ariel-frischer/sdk-lints/internal/logging"
	"github.com/bmatcuk/doublestar/v4"
)

// RepoFile is a repository-relative path plus its provenance.
type RepoFile = git.File

// Workspace is the per-run repository context.
type Workspace struct {
	Root   string
	Config *config.Configuration
	Files  []RepoFile
	Log    *logging.Logger
}

// LoadOptions controls workspace discovery.
type LoadOptions struct {
	// Dir is where repository discovery starts (default: current directory).
	Dir string
	// ConfigPath overrides the project config file.
	ConfigPath string
	// SkipInventory leaves Files empty. update-changelog does not need it.
	SkipInventory bool
	Log           *logging.Logger
}

// Load discovers the repository root, loads configuration and, unless
// skipped, the file inventory. Failures are environment or configuration
// errors: nothing downstream can run without them.
func Load(ctx context.Context, opts LoadOptions) (*Workspace, error) {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}

	root, err := git.FindRoot(ctx, opts.Dir)
	if err != nil {
		return nil, clierrors.RepoRootNotFound(err)
	}
	log.Debugf("repository root: %s", root)

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir:        root,
		ProjectConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "loading configuration",
			fmt.Sprintf("Check %s at the repository root", config.ProjectConfigFile))
	}

	ws := New(root, cfg, nil)
	ws.Log = log

	if opts.SkipInventory {
		return ws, nil
	}

	inv, err := newInventory(cfg.Inventory, root)
	if err != nil {
		return nil, clierrors.InventoryUnavailable(err)
	}
	files, err := inv.Files(ctx)
	if err != nil {
		return nil, clierrors.InventoryUnavailable(err)
	}
	log.Debugf("inventory (%s): %d files", cfg.Inventory, len(files))
	ws.Files = files
	return ws, nil
}

// New builds a workspace from already-known values.
func New(root string, cfg *config.Configuration, files []RepoFile) *Workspace {
	return &Workspace{Root: root, Config: cfg, Files: files, Log: logging.Nop()}
}

func newInventory(kind, root string) (git.Inventory, error) {
	if kind == config.InventoryCLI {
		return git.NewCLIInventory(root), nil
	}
	return git.NewGoGitInventory(root)
}

// Abs converts a repository-relative slash path into an absolute OS path.
func (w *Workspace) Abs(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// RuntimeCrates returns the repository-relative directories of every runtime
// crate: immediate subdirectories of the configured crate roots that contain
// a Cargo.toml. Missing crate roots are skipped; any other listing error is
// returned because the crate set cannot be obtained.
func (w *Workspace) RuntimeCrates() ([]string, error) {
	var crates []string
	for _, rootRel := range w.Config.CrateRoots {
		entries, err := os.ReadDir(w.Abs(rootRel))
		if err != nil {
			if os.IsNotExist(err) {
				w.Log.Debugf("crate root %s does not exist, skipping", rootRel)
				continue
			}
			return nil, fmt.Errorf("listing crate root %s: %w", rootRel, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			crate := path.Join(filepath.ToSlash(rootRel), e.Name())
			if _, err := os.Stat(w.Abs(path.Join(crate, "Cargo.toml"))); err == nil {
				crates = append(crates, crate)
			}
		}
	}
	sort.Strings(crates)
	return crates, nil
}

// CargoTomls returns the manifest path of every runtime crate.
func (w *Workspace) CargoTomls() ([]string, error) {
	crates, err := w.RuntimeCrates()
	if err != nil {
		return nil, err
	}
	manifests := make([]string, len(crates))
	for i, c := range crates {
		manifests[i] = path.Join(c, "Cargo.toml")
	}
	return manifests, nil
}

// FilesMatching returns inventory paths that match any include glob and no
// exclude glob. Patterns use doublestar syntax (** crosses directories).
func (w *Workspace) FilesMatching(include, exclude []string) ([]string, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	var matched []string
	for _, f := range w.Files {
		if matchAny(include, f.Path) && !matchAny(exclude, f.Path) {
			matched = append(matched, f.Path)
		}
	}
	return matched, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
