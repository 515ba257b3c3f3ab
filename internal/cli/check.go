package cli

import (
	"github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/ariel-frischer/sdk-lints/internal/lint"
	"github.com/ariel-frischer/sdk-lints/internal/lints"
	"github.com/ariel-frischer/sdk-lints/internal/output"
	"github.com/spf13/cobra"
)

var (
	checkAllFlag          bool
	checkReadmeFlag       bool
	checkCargoTomlFlag    bool
	checkDocsMetadataFlag bool
	checkChangelogFlag    bool
	checkLicenseFlag      bool
	checkTodosFlag        bool
)

const checkFlagsUsage = "[--readme] [--cargo-toml] [--docs-metadata] [--changelog] [--license] [--todos]"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate repository hygiene rules",
	Long: `Run the selected checks and print every violation.

Categories:
  --readme         every runtime crate has a README.md with the standard footer
  --cargo-toml     every runtime Cargo.toml lists the team as author and the expected license
  --docs-metadata  every runtime Cargo.toml carries the docs.rs metadata block
  --license        source files start with the copyright header
  --changelog      CHANGELOG.next.toml exists and every entry is valid
  --todos          every TODO carries context, e.g. TODO(#123)

Checks never modify files. The exit code is 0 when no violations are
found and 1 otherwise.`,
	Example: `  sdk-lints check --all
  sdk-lints check --readme --cargo-toml
  sdk-lints check --all --output yaml`,
	Args: noArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	f := checkCmd.Flags()
	f.BoolVar(&checkAllFlag, "all", false, "Run every check")
	f.BoolVar(&checkReadmeFlag, "readme", false, "Check README presence and footers")
	f.BoolVar(&checkCargoTomlFlag, "cargo-toml", false, "Check crate authors and license")
	f.BoolVar(&checkDocsMetadataFlag, "docs-metadata", false, "Check docs.rs metadata")
	f.BoolVar(&checkChangelogFlag, "changelog", false, "Check the pending changelog")
	f.BoolVar(&checkLicenseFlag, "license", false, "Check copyright headers")
	f.BoolVar(&checkTodosFlag, "todos", false, "Check that TODOs have context")
	// Older scripts spell it --docsrs-metadata.
	f.BoolVar(&checkDocsMetadataFlag, "docsrs-metadata", false, "Alias for --docs-metadata")
	_ = f.MarkHidden("docsrs-metadata")
}

func checkSelection() lints.Selection {
	if checkAllFlag {
		return lints.All()
	}
	return lints.Selection{
		Readme:       checkReadmeFlag,
		CargoToml:    checkCargoTomlFlag,
		DocsMetadata: checkDocsMetadataFlag,
		Changelog:    checkChangelogFlag,
		License:      checkLicenseFlag,
		Todos:        checkTodosFlag,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	commandRan = true
	sel := checkSelection()
	if sel.Empty() {
		return errors.NoLintsSelected("check", checkFlagsUsage)
	}
	format, err := reportFormat()
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd, false)
	if err != nil {
		return err
	}

	sp := newSpinner(cmd, "Running checks")
	runner := &lint.Runner{Log: logger, Progress: sp.Update}
	sp.Start()
	res, err := runner.Check(cmd.Context(), ws, lints.Checkers(sel, ws.Config))
	sp.Stop(err == nil && res.OK())
	if err != nil {
		return errors.WrapWithMessage(err, errors.Environment, "a check could not list the files it inspects")
	}

	report := output.Report{Command: "check", OK: res.OK(), Violations: res.Violations}
	if err := output.Write(cmd.OutOrStdout(), report, format, output.Options{Plain: plainFlag}); err != nil {
		return err
	}
	if !res.OK() {
		return &ExitError{Code: ExitLintFailed, Err: errors.LintFailures(len(res.Failures()))}
	}
	return nil
}
