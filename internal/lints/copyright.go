package lints

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ariel-frischer/sdk-lints/internal/config"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
)

// CopyrightHeader requires every header line within the first SearchLines
// lines of each matching source file.
type CopyrightHeader struct {
	config.CopyrightConfig
}

func (CopyrightHeader) Name() string { return "copyright-header" }

func (l CopyrightHeader) Files(ws *workspace.Workspace) ([]string, error) {
	return ws.FilesMatching(l.Include, l.Exclude)
}

func (l CopyrightHeader) CheckFile(_ string, content []byte) []string {
	head := headLines(content, l.SearchLines)

	var msgs []string
	for _, want := range l.Header {
		found := false
		for _, line := range head {
			if strings.Contains(line, want) {
				found = true
				break
			}
		}
		if !found {
			msgs = append(msgs, fmt.Sprintf("missing copyright header line %q in the first %d lines", want, l.SearchLines))
		}
	}
	return msgs
}

func headLines(content []byte, n int) []string {
	lines := make([]string, 0, n)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(lines) < n && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
