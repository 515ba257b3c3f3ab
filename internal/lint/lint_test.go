package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/ariel-frischer/sdk-lints/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// footerLint requires every listed file to end with "footer\n". Files
// containing "BROKEN" cannot be fixed.
type footerLint struct {
	files []string
}

func (footerLint) Name() string { return "footer" }

func (l footerLint) Files(*workspace.Workspace) ([]string, error) {
	return l.files, nil
}

func (footerLint) CheckFile(_ string, content []byte) []string {
	if strings.HasSuffix(string(content), "footer\n") {
		return nil
	}
	return []string{"missing footer"}
}

func (footerLint) FixFile(_ string, current []byte) (FixResult, error) {
	s := string(current)
	if strings.Contains(s, "BROKEN") {
		return FixResult{Content: current, Unfixable: []string{"file is broken"}}, nil
	}
	if strings.HasSuffix(s, "footer\n") {
		return FixResult{Content: current}, nil
	}
	return FixResult{Content: []byte(s + "footer\n"), Reason: "footer was missing"}, nil
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func snapshot(t *testing.T, root string, rels []string) map[string]string {
	t.Helper()
	out := make(map[string]string, len(rels))
	for _, rel := range rels {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			out[rel] = "<missing>"
			continue
		}
		out[rel] = string(data)
	}
	return out
}

func fixture(t *testing.T) (*workspace.Workspace, footerLint) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a/README.md": "# a\nfooter\n",
		"b/README.md": "# b\n",
		"c/README.md": "# c\nBROKEN\n",
	})
	ws := workspace.New(root, nil, nil)
	return ws, footerLint{files: []string{"a/README.md", "b/README.md", "c/README.md", "d/README.md"}}
}

func TestModeFromDryRun(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DryRun, ModeFromDryRun(true))
	assert.Equal(t, Persist, ModeFromDryRun(false))
	assert.Equal(t, "dry-run", DryRun.String())
	assert.Equal(t, "persist", Persist.String())
}

func TestViolationString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[x] a.rs: bad", Violation{Lint: "x", Path: "a.rs", Message: "bad"}.String())
	assert.Equal(t, "[x] bad", Violation{Lint: "x", Message: "bad"}.String())
}

func TestCheckFiles(t *testing.T) {
	t.Parallel()
	ws, l := fixture(t)

	got, err := CheckFiles(l).CheckAll(context.Background(), ws)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "b/README.md", got[0].Path)
	assert.Equal(t, "missing footer", got[0].Message)
	assert.Equal(t, "c/README.md", got[1].Path)
	assert.Equal(t, "d/README.md", got[2].Path)
	assert.Contains(t, got[2].Message, "failed to read file")
	for _, v := range got {
		assert.Equal(t, "footer", v.Lint)
		assert.False(t, v.Fixed)
	}
}

func TestCheckFixableNeverMutates(t *testing.T) {
	t.Parallel()
	ws, l := fixture(t)
	before := snapshot(t, ws.Root, l.files)

	got, err := CheckFixable(l).CheckAll(context.Background(), ws)
	require.NoError(t, err)

	assert.Equal(t, before, snapshot(t, ws.Root, l.files))
	require.Len(t, got, 3)
	assert.Equal(t, "footer was missing", got[0].Message)
	assert.Contains(t, got[0].Suggestion, "+footer")
	assert.Equal(t, "file is broken", got[1].Message)
	assert.Contains(t, got[2].Message, "failed to read file")
	assert.NotContains(t, got[2].Message, ws.Root)
}

func TestFixFilesDryRunParity(t *testing.T) {
	t.Parallel()

	dryWS, l := fixture(t)
	persistWS, _ := fixture(t)
	before := snapshot(t, dryWS.Root, l.files)

	dry, err := FixFiles(l).FixAll(context.Background(), dryWS, DryRun)
	require.NoError(t, err)
	persist, err := FixFiles(l).FixAll(context.Background(), persistWS, Persist)
	require.NoError(t, err)

	assert.Equal(t, dry, persist, "dry-run must report exactly what persist does")
	assert.Equal(t, before, snapshot(t, dryWS.Root, l.files), "dry-run must not write")

	after := snapshot(t, persistWS.Root, l.files)
	assert.Equal(t, "# b\nfooter\n", after["b/README.md"])
	assert.Equal(t, "# c\nBROKEN\n", after["c/README.md"], "unfixable file is left alone")

	require.Len(t, persist, 3)
	assert.True(t, persist[0].Fixed)
	assert.False(t, persist[1].Fixed)
	assert.False(t, persist[2].Fixed)
}

func TestFixFilesWriteFailureIsUnfixed(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"ro/README.md": "# ro\n"})
	dir := filepath.Join(root, "ro")
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	ws := workspace.New(root, nil, nil)
	got, err := FixFiles(footerLint{files: []string{"ro/README.md"}}).FixAll(context.Background(), ws, Persist)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Fixed)
	assert.Contains(t, got[0].Message, "failed to write fix")
	assert.NotContains(t, got[0].Message, root)
}

func TestFileErrorDropsOSPath(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	tests := map[string]struct {
		err  error
		want error
	}{
		"path error": {
			err:  &fs.PathError{Op: "open", Path: "/tmp/x/README.md", Err: syscall.ENOENT},
			want: syscall.ENOENT,
		},
		"wrapped path error": {
			err:  fmt.Errorf("reading: %w", &fs.PathError{Op: "open", Path: "/a", Err: syscall.EACCES}),
			want: syscall.EACCES,
		},
		"link error": {
			err:  &os.LinkError{Op: "rename", Old: "/a", New: "/b", Err: syscall.EXDEV},
			want: syscall.EXDEV,
		},
		"other error": {err: plain, want: plain},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fileError(tt.err))
		})
	}
}

func TestReadViolationIsLocationIndependent(t *testing.T) {
	t.Parallel()

	a := readViolation("footer", "d/README.md", &fs.PathError{Op: "open", Path: "/one/d/README.md", Err: syscall.ENOENT})
	b := readViolation("footer", "d/README.md", &fs.PathError{Op: "open", Path: "/two/d/README.md", Err: syscall.ENOENT})
	assert.Equal(t, a, b)
	assert.Equal(t, "failed to read file: "+syscall.ENOENT.Error(), a.Message)
}

type fakeChecker struct {
	name  string
	delay time.Duration
	out   []Violation
	err   error
}

func (f fakeChecker) Name() string { return f.name }

func (f fakeChecker) CheckAll(ctx context.Context, _ *workspace.Workspace) ([]Violation, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return f.out, f.err
}

func TestRunnerCheckKeepsSelectionOrder(t *testing.T) {
	t.Parallel()

	checkers := []Checker{
		fakeChecker{name: "slow", delay: 30 * time.Millisecond, out: []Violation{{Lint: "slow", Message: "1"}}},
		fakeChecker{name: "clean"},
		fakeChecker{name: "fast", out: []Violation{{Lint: "fast", Message: "2"}, {Lint: "fast", Message: "3"}}},
	}

	var seen []string
	r := &Runner{Progress: func(name string, done, total int) {
		seen = append(seen, name)
		assert.Equal(t, 3, total)
	}}
	res, err := r.Check(context.Background(), workspace.New(t.TempDir(), nil, nil), checkers)
	require.NoError(t, err)

	var msgs []string
	for _, v := range res.Violations {
		msgs = append(msgs, v.Message)
	}
	assert.Equal(t, []string{"1", "2", "3"}, msgs)
	assert.False(t, res.OK())
	assert.Len(t, res.Failures(), 3)
	assert.ElementsMatch(t, []string{"slow", "clean", "fast"}, seen)
}

func TestRunnerCheckFatalError(t *testing.T) {
	t.Parallel()

	boom := errors.New("cannot list crates")
	r := &Runner{Concurrency: 2}
	_, err := r.Check(context.Background(), workspace.New(t.TempDir(), nil, nil), []Checker{
		fakeChecker{name: "ok", delay: time.Second},
		fakeChecker{name: "bad", err: boom},
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunnerCheckEmptyIsOK(t *testing.T) {
	t.Parallel()

	res, err := (&Runner{}).Check(context.Background(), workspace.New(t.TempDir(), nil, nil), []Checker{fakeChecker{name: "clean"}})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Violations)
}

func TestRunnerFix(t *testing.T) {
	t.Parallel()
	ws, l := fixture(t)
	l.files = []string{"a/README.md", "b/README.md"}

	r := &Runner{}
	res, err := r.Fix(context.Background(), ws, []Fixer{FixFiles(l)}, Persist)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.FixedCount())

	// Second run has nothing left to do.
	res, err = r.Fix(context.Background(), ws, []Fixer{FixFiles(l)}, Persist)
	require.NoError(t, err)
	assert.Empty(t, res.Violations)
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	diff := UnifiedDiff("x/README.md", []byte("a\nb\n"), []byte("a\nc\n"))
	assert.Contains(t, diff, "--- a/x/README.md")
	assert.Contains(t, diff, "+++ b/x/README.md")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")

	assert.Empty(t, UnifiedDiff("same", []byte("a\n"), []byte("a\n")))
}
