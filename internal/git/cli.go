package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// commandRunner runs git with args in dir and returns stdout.
type commandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// execGit is the default commandRunner backed by os/exec.
func execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// CLIInventory lists files by shelling out to the git CLI.
type CLIInventory struct {
	Dir string
	run commandRunner
}

// NewCLIInventory creates a CLI-backed inventory rooted at dir.
func NewCLIInventory(dir string) *CLIInventory {
	return &CLIInventory{Dir: dir, run: execGit}
}

// Root runs `git rev-parse --show-toplevel`.
func (c *CLIInventory) Root(ctx context.Context) (string, error) {
	out, err := c.run(ctx, c.Dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf("git rev-parse returned an empty repository root")
	}
	return filepath.Clean(root), nil
}

// Files returns `git ls-tree -r HEAD --name-only` followed by
// `git diff --name-only`, deduplicated and sorted.
func (c *CLIInventory) Files(ctx context.Context) ([]File, error) {
	tracked, err := c.run(ctx, c.Dir, "ls-tree", "-r", "HEAD", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("listing tracked files: %w", err)
	}

	changed, err := c.run(ctx, c.Dir, "diff", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	files := make(map[string]Provenance)
	for _, path := range splitLines(tracked) {
		files[path] = Tracked
	}
	for _, path := range splitLines(changed) {
		files[path] = Modified
	}

	result := sortedFiles(files)
	logDebug("[git] CLIInventory: %d files in scope", len(result))
	return result, nil
}

// splitLines returns the trimmed, non-empty lines of out.
func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
