package cli

import (
	"github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/ariel-frischer/sdk-lints/internal/lint"
	"github.com/ariel-frischer/sdk-lints/internal/lints"
	"github.com/ariel-frischer/sdk-lints/internal/output"
	"github.com/spf13/cobra"
)

var (
	fixAllFlag          bool
	fixReadmeFlag       bool
	fixDocsMetadataFlag bool
	fixDryRunFlag       bool
	fixShowDiffFlag     bool
)

const fixFlagsUsage = "[--readme] [--docs-metadata] [--dry-run[=true|false]]"

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Correct README footers and docs.rs metadata",
	Long: `Rewrite the anchored README footer and docs.rs metadata sections of every
runtime crate.

With --dry-run nothing is written, but the report lists exactly what a real
run would change. Problems that cannot be fixed automatically (for example a
docs.rs table outside the anchors) are reported and make the command exit 1.`,
	Example: `  sdk-lints fix --all
  sdk-lints fix --readme --dry-run --show-diff
  sdk-lints fix --docs-metadata --dry-run=false`,
	Args: noArgs,
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	f := fixCmd.Flags()
	f.BoolVar(&fixAllFlag, "all", false, "Run every fix")
	f.BoolVar(&fixReadmeFlag, "readme", false, "Fix README footers")
	f.BoolVar(&fixDocsMetadataFlag, "docs-metadata", false, "Fix docs.rs metadata")
	f.BoolVar(&fixDryRunFlag, "dry-run", false, "Report fixes without writing them")
	f.BoolVar(&fixShowDiffFlag, "show-diff", false, "Print the diff of each fix")
	f.BoolVar(&fixDocsMetadataFlag, "docsrs-metadata", false, "Alias for --docs-metadata")
	_ = f.MarkHidden("docsrs-metadata")
}

func fixSelection() lints.Selection {
	if fixAllFlag {
		return lints.All()
	}
	return lints.Selection{Readme: fixReadmeFlag, DocsMetadata: fixDocsMetadataFlag}
}

func runFix(cmd *cobra.Command, _ []string) error {
	commandRan = true
	sel := fixSelection()
	if sel.Empty() {
		return errors.NoLintsSelected("fix", fixFlagsUsage)
	}
	format, err := reportFormat()
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd, false)
	if err != nil {
		return err
	}

	mode := lint.ModeFromDryRun(fixDryRunFlag)
	logger.Debugf("fix mode: %s", mode)

	sp := newSpinner(cmd, "Applying fixes")
	runner := &lint.Runner{Log: logger, Progress: sp.Update}
	sp.Start()
	res, err := runner.Fix(cmd.Context(), ws, lints.Fixers(sel, ws.Config), mode)
	sp.Stop(err == nil && res.OK())
	if err != nil {
		return errors.WrapWithMessage(err, errors.Environment, "a fix could not list the files it corrects")
	}

	report := output.Report{Command: "fix", Mode: mode.String(), OK: res.OK(), Violations: res.Violations}
	opts := output.Options{Plain: plainFlag, ShowDiff: fixShowDiffFlag}
	if err := output.Write(cmd.OutOrStdout(), report, format, opts); err != nil {
		return err
	}
	if !res.OK() {
		return &ExitError{Code: ExitLintFailed, Err: errors.LintFailures(len(res.Failures()))}
	}
	return nil
}
