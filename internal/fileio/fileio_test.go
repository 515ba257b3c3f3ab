package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// leftovers returns temp files still present in dir.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	return matches
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteFile(path, []byte("new")))

	assert.Equal(t, "new", readString(t, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aws", "SDK_CHANGELOG.md")
	require.NoError(t, WriteFile(path, []byte("# log\n")))
	assert.Equal(t, "# log\n", readString(t, path))
}

func TestTxnCommit(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("a-old"), 0o644))

	txn := NewTxn()
	require.NoError(t, txn.Stage(a, []byte("a-new")))
	require.NoError(t, txn.Stage(b, []byte("b-new")))
	assert.Equal(t, 2, txn.Len())

	// Nothing visible before commit.
	assert.Equal(t, "a-old", readString(t, a))
	_, err := os.Stat(b)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, txn.Commit())
	assert.Equal(t, "a-new", readString(t, a))
	assert.Equal(t, "b-new", readString(t, b))
	assert.Empty(t, leftovers(t, dir))

	assert.Error(t, txn.Commit(), "second commit must fail")
}

func TestTxnRollsBackOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	c := filepath.Join(dir, "c.md")
	require.NoError(t, os.WriteFile(a, []byte("a-old"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("c-old"), 0o644))

	injected := errors.New("disk full")
	txn := NewTxn(WithRename(func(oldpath, newpath string) error {
		if newpath == c {
			return injected
		}
		return os.Rename(oldpath, newpath)
	}))
	require.NoError(t, txn.Stage(a, []byte("a-new")))
	require.NoError(t, txn.Stage(b, []byte("b-new")))
	require.NoError(t, txn.Stage(c, []byte("c-new")))

	err := txn.Commit()
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	assert.Equal(t, "a-old", readString(t, a))
	_, statErr := os.Stat(b)
	assert.True(t, os.IsNotExist(statErr), "b did not exist before and must be removed")
	assert.Equal(t, "c-old", readString(t, c))
	assert.Empty(t, leftovers(t, dir))
}

func TestTxnAbort(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")

	txn := NewTxn()
	require.NoError(t, txn.Stage(a, []byte("a-new")))
	txn.Abort()

	_, err := os.Stat(a)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, leftovers(t, dir))
	assert.Error(t, txn.Stage(a, []byte("again")))
}

func TestTxnRejectsDuplicateStage(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")

	txn := NewTxn()
	defer txn.Abort()
	require.NoError(t, txn.Stage(a, []byte("1")))
	assert.Error(t, txn.Stage(a, []byte("2")))
}
