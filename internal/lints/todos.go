package lints

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/sdk-lints/internal/config"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
)

const todoMarker = "TODO"

// TodoContext requires every TODO to carry context, e.g. TODO(#123) or
// TODO(rcoh).
type TodoContext struct {
	config.TodosConfig
}

func (TodoContext) Name() string { return "todo-context" }

func (l TodoContext) Files(ws *workspace.Workspace) ([]string, error) {
	return ws.FilesMatching(l.Include, l.Exclude)
}

func (TodoContext) CheckFile(_ string, content []byte) []string {
	var msgs []string
	for i, line := range strings.Split(string(content), "\n") {
		rest := line
		for {
			idx := strings.Index(rest, todoMarker)
			if idx < 0 {
				break
			}
			rest = rest[idx+len(todoMarker):]
			if !hasContext(rest) {
				msgs = append(msgs, fmt.Sprintf("line %d: TODO without context: `%s`", i+1, strings.TrimSpace(line)))
				break
			}
		}
	}
	return msgs
}

// hasContext reports whether s opens with a non-empty parenthesized group.
func hasContext(s string) bool {
	if !strings.HasPrefix(s, "(") {
		return false
	}
	end := strings.Index(s, ")")
	return end > 1 && strings.TrimSpace(s[1:end]) != ""
}
