package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner reports lint progress. Without a TTY it does nothing, so callers
// never need to check.
type Spinner struct {
	s       *spinner.Spinner
	label   string
	symbols ProgressSymbols
}

// NewSpinner creates a spinner writing to out. It is disabled when caps
// says out is not a terminal.
func NewSpinner(out io.Writer, caps TerminalCapabilities, label string) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{label: label, symbols: symbols}
	if !caps.IsTTY {
		return sp
	}

	sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(out))
	if caps.SupportsColor {
		// Only fails for unknown color names.
		_ = sp.s.Color("cyan")
	}
	sp.s.Suffix = " " + label
	return sp
}

// Start begins animating.
func (sp *Spinner) Start() {
	if sp.s == nil {
		return
	}
	sp.s.Start()
}

// Update shows which lint just finished. Its signature matches
// lint.Runner.Progress.
func (sp *Spinner) Update(name string, done, total int) {
	if sp.s == nil {
		return
	}
	sp.s.Lock()
	sp.s.Suffix = fmt.Sprintf(" %s (%d/%d: %s)", sp.label, done, total, name)
	sp.s.Unlock()
}

// Stop clears the spinner line and prints a final status mark.
func (sp *Spinner) Stop(ok bool) {
	if sp.s == nil {
		return
	}
	mark := sp.symbols.Checkmark
	if !ok {
		mark = sp.symbols.Failure
	}
	sp.s.FinalMSG = fmt.Sprintf("%s %s\n", mark, sp.label)
	sp.s.Stop()
}
