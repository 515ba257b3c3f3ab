// Package fileio provides crash-safe file writes. WriteFile replaces a single
// file through a temp file and rename. Txn stages several files and commits
// them all-or-nothing, restoring already-renamed targets if a later rename fails.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPerm is used for files that do not exist yet.
const DefaultPerm fs.FileMode = 0o644

// RenameFunc renames oldpath to newpath.
type RenameFunc func(oldpath, newpath string) error

// WriteFile atomically replaces path with data, keeping the existing file
// mode. The temp file is always closed and removed on failure.
func WriteFile(path string, data []byte) error {
	tmp, err := writeTemp(path, data, permOf(path))
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // Best effort cleanup
		return fmt.Errorf("renaming temp file into %s: %w", path, err)
	}
	return nil
}

// permOf returns the mode of an existing file, or DefaultPerm.
func permOf(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return DefaultPerm
}

// writeTemp writes data to a temp file next to path (same filesystem, so the
// final rename is atomic) and returns the temp path.
func writeTemp(path string, data []byte, perm fs.FileMode) (tmpPath string, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
			err = fmt.Errorf("closing temp file for %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("syncing temp file for %s: %w", path, err)
	}
	if err := f.Chmod(perm); err != nil {
		return "", fmt.Errorf("setting mode on temp file for %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	return f.Name(), nil
}
