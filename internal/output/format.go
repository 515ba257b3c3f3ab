// Package output renders lint reports for the terminal (text) or for
// machines (yaml). It only depends on the lint data model.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/sdk-lints/internal/lint"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected text or yaml)", s)
}

// Report is the outcome of one check or fix run.
type Report struct {
	Command    string           `yaml:"command"`
	Mode       string           `yaml:"mode,omitempty"`
	OK         bool             `yaml:"ok"`
	Violations []lint.Violation `yaml:"violations"`
}

// Options controls text rendering.
type Options struct {
	// Plain disables colors and Unicode symbols.
	Plain bool
	// ShowDiff prints each violation's suggested diff.
	ShowDiff bool
}

// Write renders r in the given format.
func Write(out io.Writer, r Report, format Format, opts Options) error {
	if format == FormatYAML {
		return WriteYAML(out, r)
	}
	WriteText(out, r, opts)
	return nil
}

// WriteYAML encodes the report as a YAML document.
func WriteYAML(out io.Writer, r Report) error {
	if r.Violations == nil {
		r.Violations = []lint.Violation{}
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteText prints one line per violation followed by a summary line.
// Fixed violations are marked green, remaining ones red.
func WriteText(out io.Writer, r Report, opts Options) {
	ok, bad := "✓", "✗"
	if opts.Plain {
		ok, bad = "[FIXED]", "[FAIL]"
	}
	green := colorFunc(opts, color.FgGreen, color.Bold)
	red := colorFunc(opts, color.FgRed, color.Bold)
	cyan := colorFunc(opts, color.FgCyan)
	dim := colorFunc(opts, color.Faint)

	for _, v := range r.Violations {
		mark := red(bad)
		if v.Fixed {
			mark = green(ok)
		}
		where := ""
		if v.Path != "" {
			where = cyan(v.Path) + ": "
		}
		fmt.Fprintf(out, "%s %s %s%s\n", mark, dim("["+v.Lint+"]"), where, v.Message)

		if opts.ShowDiff && v.Suggestion != "" {
			for _, line := range strings.Split(strings.TrimRight(v.Suggestion, "\n"), "\n") {
				fmt.Fprintf(out, "    %s\n", diffLine(opts, line))
			}
		}
	}

	PrintSummary(out, r, opts)
}

// PrintSummary prints the closing line of a text report.
func PrintSummary(out io.Writer, r Report, opts Options) {
	green := colorFunc(opts, color.FgGreen, color.Bold)
	red := colorFunc(opts, color.FgRed, color.Bold)

	fixed, failed := 0, 0
	for _, v := range r.Violations {
		if v.Fixed {
			fixed++
		} else {
			failed++
		}
	}

	switch {
	case failed > 0 && fixed > 0:
		fmt.Fprintf(out, "%s: %s, %s\n", r.Command, green(fmt.Sprintf("%d fixed", fixed)), red(fmt.Sprintf("%d remaining", failed)))
	case failed > 0:
		fmt.Fprintf(out, "%s: %s\n", r.Command, red(fmt.Sprintf("%d violation(s)", failed)))
	case fixed > 0 && r.Mode == lint.DryRun.String():
		fmt.Fprintf(out, "%s: %s\n", r.Command, green(fmt.Sprintf("%d fix(es) would be applied", fixed)))
	case fixed > 0:
		fmt.Fprintf(out, "%s: %s\n", r.Command, green(fmt.Sprintf("%d fixed", fixed)))
	default:
		fmt.Fprintf(out, "%s: %s\n", r.Command, green("no violations"))
	}
}

func diffLine(opts Options, line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return colorFunc(opts, color.Bold)(line)
	case strings.HasPrefix(line, "+"):
		return colorFunc(opts, color.FgGreen)(line)
	case strings.HasPrefix(line, "-"):
		return colorFunc(opts, color.FgRed)(line)
	case strings.HasPrefix(line, "@@"):
		return colorFunc(opts, color.FgCyan)(line)
	}
	return line
}

func colorFunc(opts Options, attrs ...color.Attribute) func(a ...interface{}) string {
	if opts.Plain {
		return fmt.Sprint
	}
	return color.New(attrs...).SprintFunc()
}
