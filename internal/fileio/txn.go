package fileio

import (
	"errors"
	"fmt"
	"os"
)

// Txn stages new content for several files and commits them as one unit.
// Nothing visible changes until Commit; if any rename fails, targets that
// were already replaced are restored to their original content (or removed
// when they did not exist) and every remaining temp file is deleted.
type Txn struct {
	rename RenameFunc
	staged []*stagedFile
	done   bool
}

type stagedFile struct {
	target   string
	temp     string
	original []byte
	existed  bool
	renamed  bool
}

// TxnOption configures a Txn.
type TxnOption func(*Txn)

// WithRename replaces os.Rename, which lets tests inject failures.
func WithRename(fn RenameFunc) TxnOption {
	return func(t *Txn) {
		t.rename = fn
	}
}

// NewTxn starts an empty transaction.
func NewTxn(opts ...TxnOption) *Txn {
	t := &Txn{rename: os.Rename}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of staged files.
func (t *Txn) Len() int {
	return len(t.staged)
}

// Stage writes data to a temp file next to path and remembers the current
// content of path for rollback. Staging the same path twice is an error.
func (t *Txn) Stage(path string, data []byte) error {
	if t.done {
		return errors.New("transaction already finished")
	}
	for _, s := range t.staged {
		if s.target == path {
			return fmt.Errorf("%s is already staged", path)
		}
	}

	original, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	tmp, err := writeTemp(path, data, permOf(path))
	if err != nil {
		return err
	}

	t.staged = append(t.staged, &stagedFile{
		target:   path,
		temp:     tmp,
		original: original,
		existed:  existed,
	})
	return nil
}

// Commit renames every staged file into place in staging order. On failure
// it rolls back and returns the rename error joined with any rollback error.
func (t *Txn) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true

	for _, s := range t.staged {
		if err := t.rename(s.temp, s.target); err != nil {
			renameErr := fmt.Errorf("committing %s: %w", s.target, err)
			return errors.Join(renameErr, t.rollback())
		}
		s.renamed = true
	}
	return nil
}

// Abort discards every staged temp file. It is safe to call after Commit.
func (t *Txn) Abort() {
	if t.done {
		return
	}
	t.done = true
	for _, s := range t.staged {
		os.Remove(s.temp)
	}
}

// rollback restores renamed targets and removes leftover temps.
func (t *Txn) rollback() error {
	var errs []error
	for i := len(t.staged) - 1; i >= 0; i-- {
		s := t.staged[i]
		if !s.renamed {
			os.Remove(s.temp)
			continue
		}
		if !s.existed {
			if err := os.Remove(s.target); err != nil && !os.IsNotExist(err) {
				errs = append(errs, fmt.Errorf("removing %s: %w", s.target, err))
			}
			continue
		}
		if err := t.restore(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Txn) restore(s *stagedFile) error {
	tmp, err := writeTemp(s.target, s.original, permOf(s.target))
	if err != nil {
		return fmt.Errorf("restoring %s: %w", s.target, err)
	}
	if err := t.rename(tmp, s.target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("restoring %s: %w", s.target, err)
	}
	return nil
}
