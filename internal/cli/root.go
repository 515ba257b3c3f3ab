// Package cli implements the sdk-lints command line: check, fix,
// update-changelog and the config/version helpers.
package cli

import (
	"context"
	"fmt"
	"io"

	clierrors "github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/ariel-frischer/sdk-lints/internal/git"
	"github.com/ariel-frischer/sdk-lints/internal/logging"
	"github.com/ariel-frischer/sdk-lints/internal/output"
	"github.com/ariel-frischer/sdk-lints/internal/progress"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPathFlag string
	directoryFlag  string
	verboseFlag    bool
	plainFlag      bool
	outputFlag     string
)

// commandRan is set by each RunE. Errors returned before it is set come
// from cobra itself (unknown command, bad arguments).
var commandRan bool

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = logging.Nop()

var rootCmd = &cobra.Command{
	Use:   "sdk-lints",
	Short: "Repository hygiene lints and changelog publishing for smithy-rs",
	Long: `sdk-lints enforces repository hygiene across the runtime crates of a
smithy-rs checkout and publishes pending changelog entries.

  check             validate README, Cargo.toml, copyright, TODO and changelog rules
  fix               correct README footers and docs.rs metadata (supports --dry-run)
  update-changelog  move CHANGELOG.next.toml entries into CHANGELOG.md and
                    aws/SDK_CHANGELOG.md under a new version heading

All paths are resolved against the root of the enclosing git repository.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (SDK_LINTS_*)
  2. Project config (.sdk-lints.yml at the repository root)
  3. User config (~/.config/sdk-lints/config.yml)
  4. Built-in defaults`,
	Example: `  # Run every check
  sdk-lints check --all

  # Preview README footer fixes as a diff
  sdk-lints fix --readme --dry-run --show-diff

  # Publish pending changelog entries
  sdk-lints update-changelog --smithy-version 0.38.0 --sdk-version 0.8.0 --date 2022-03-17`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if plainFlag {
			color.NoColor = true
		}
		logger = logging.New(logging.Options{
			Verbose: verboseFlag,
			Plain:   plainFlag,
			Out:     cmd.ErrOrStderr(),
		})
		git.SetDebugLogger(logger.Debugf)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Project config file (default: .sdk-lints.yml at the repository root)")
	rootCmd.PersistentFlags().StringVarP(&directoryFlag, "directory", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors, spinner or Unicode symbols)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", string(output.FormatText), "Report format for check and fix: text or yaml")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(), "Run '"+cmd.CommandPath()+" --help' for usage")
	})
}

// Execute runs the root command and prints any error. Use ExitCode on the
// returned error to pick the process exit status.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	commandRan = false
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !commandRan && clierrors.AsCLIError(err) == nil {
		err = clierrors.NewArgumentErrorWithUsage(err.Error(), rootCmd.UseLine()+" <command>",
			"Run 'sdk-lints --help' for usage")
	}
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError prints err unless it is a bare exit code whose report has
// already been written.
func printError(w io.Writer, err error) {
	if exitErr, ok := err.(*ExitError); ok && exitErr.Err == nil {
		return
	}
	clierrors.FprintAny(w, err)
}

// loadWorkspace discovers the repository for the current invocation.
func loadWorkspace(cmd *cobra.Command, skipInventory bool) (*workspace.Workspace, error) {
	return workspace.Load(cmd.Context(), workspace.LoadOptions{
		Dir:           directoryFlag,
		ConfigPath:    configPathFlag,
		SkipInventory: skipInventory,
		Log:           logger,
	})
}

// newSpinner returns a stderr spinner, disabled for --plain and non-TTYs.
func newSpinner(cmd *cobra.Command, label string) *progress.Spinner {
	caps := progress.DetectTerminalCapabilities()
	if plainFlag {
		caps = progress.TerminalCapabilities{}
	}
	return progress.NewSpinner(cmd.ErrOrStderr(), caps, label)
}

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return clierrors.NewArgumentErrorWithUsage(
		fmt.Sprintf("unexpected argument %q", args[0]), cmd.UseLine(),
		"Run '"+cmd.CommandPath()+" --help' for usage",
	)
}

func reportFormat() (output.Format, error) {
	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		return "", clierrors.NewArgumentErrorWithUsage(err.Error(), "sdk-lints <command> --output text|yaml")
	}
	return format, nil
}
