package changelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/sdk-lints/internal/fileio"
	"github.com/ariel-frischer/sdk-lints/internal/logging"
)

// Paths locates the queue and the two documents.
type Paths struct {
	Pending        string
	SmithyDocument string
	SDKDocument    string
}

// Document returns the changelog path for target.
func (p Paths) Document(target Target) string {
	if target == TargetSDK {
		return p.SDKDocument
	}
	return p.SmithyDocument
}

// Versions are the caller-supplied release identifiers. They are opaque.
type Versions struct {
	Smithy string
	SDK    string
	Date   string
}

// For returns the version string a target's section is stamped with.
func (v Versions) For(target Target) string {
	if target == TargetSDK {
		return v.SDK
	}
	return v.Smithy
}

// PendingError reports a queue that could not be loaded or validated.
// Nothing has been written when it is returned.
type PendingError struct {
	Path string
	Err  error
}

func (e *PendingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PendingError) Unwrap() error {
	return e.Err
}

// Summary describes what a publish did.
type Summary struct {
	// Published counts entries per target.
	Published map[Target]int
	// Written lists every file that was replaced, in commit order.
	Written []string
}

// Total returns the number of published entries.
func (s *Summary) Total() int {
	n := 0
	for _, c := range s.Published {
		n += c
	}
	return n
}

// Updater publishes the queue into the changelogs.
type Updater struct {
	Paths  Paths
	Render RenderOptions
	Log    *logging.Logger
	// TxnOptions are passed to every commit.
	TxnOptions []fileio.TxnOption
}

// Update loads the queue, prepends one section per non-empty target and
// clears the queue, all in one commit. A missing or empty queue writes
// nothing. If any file cannot be replaced, every file keeps its previous
// content.
func (u *Updater) Update(ctx context.Context, v Versions) (*Summary, error) {
	summary := &Summary{Published: make(map[Target]int)}

	pending, err := LoadPending(u.Paths.Pending)
	if errors.Is(err, fs.ErrNotExist) {
		u.Log.Warnf("no pending changelog at %s, nothing to publish", u.Paths.Pending)
		return summary, nil
	}
	if err != nil {
		return nil, &PendingError{Path: u.Paths.Pending, Err: err}
	}
	if pending.IsEmpty() {
		u.Log.Infof("pending changelog is empty, nothing to publish")
		return summary, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := fileio.NewTxn(u.TxnOptions...)
	defer txn.Abort()

	for _, target := range Targets {
		entries := pending.Entries(target)
		if len(entries) == 0 {
			u.Log.Debugf("%s: no entries, document untouched", target)
			continue
		}

		section := NewReleaseSection(v.For(target), v.Date, entries).Render(u.Render)
		path := u.Paths.Document(target)
		doc, err := prependToFile(path, section)
		if err != nil {
			return nil, err
		}
		if err := txn.Stage(path, []byte(doc)); err != nil {
			return nil, fmt.Errorf("staging %s: %w", path, err)
		}
		summary.Published[target] = len(entries)
		summary.Written = append(summary.Written, path)
		u.Log.Debugf("%s: staged %d entries for %s", target, len(entries), path)
	}

	if err := txn.Stage(u.Paths.Pending, []byte(EmptyPendingTemplate)); err != nil {
		return nil, fmt.Errorf("staging %s: %w", u.Paths.Pending, err)
	}
	summary.Written = append(summary.Written, u.Paths.Pending)

	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("publishing changelog: %w", err)
	}
	return summary, nil
}

func prependToFile(path, section string) (string, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Prepend(string(existing), section), nil
	case errors.Is(err, fs.ErrNotExist):
		return NewDocument(section), nil
	default:
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
}
