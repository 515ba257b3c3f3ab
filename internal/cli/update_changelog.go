package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/sdk-lints/internal/changelog"
	clierrors "github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	smithyVersionFlag string
	sdkVersionFlag    string
	releaseDateFlag   string
)

var updateChangelogCmd = &cobra.Command{
	Use:   "update-changelog",
	Short: "Publish pending changelog entries",
	Long: `Move every entry from CHANGELOG.next.toml into the changelogs.

smithy-rs entries are prepended to CHANGELOG.md under the smithy-rs
version; aws-sdk-rust entries are prepended to aws/SDK_CHANGELOG.md under
the SDK version. The queue is then reset to its empty template.

All three files are written together: if any write fails, every file keeps
its previous content. Running the command again with an empty queue is a
no-op. Versions and the date are used verbatim.`,
	Example: `  sdk-lints update-changelog --smithy-version 0.38.0 --sdk-version 0.8.0 --date 2022-03-17`,
	Args:    noArgs,
	RunE:    runUpdateChangelog,
}

func init() {
	rootCmd.AddCommand(updateChangelogCmd)

	f := updateChangelogCmd.Flags()
	f.StringVar(&smithyVersionFlag, "smithy-version", "", "Version heading for CHANGELOG.md (required)")
	f.StringVar(&sdkVersionFlag, "sdk-version", "", "Version heading for aws/SDK_CHANGELOG.md (required)")
	f.StringVar(&releaseDateFlag, "date", "", "Release date shown next to both versions (required)")
}

// requireReleaseFlags reports every missing release flag at once.
func requireReleaseFlags() error {
	var missing []string
	for name, value := range map[string]string{
		"--smithy-version": smithyVersionFlag,
		"--sdk-version":    sdkVersionFlag,
		"--date":           releaseDateFlag,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return clierrors.NewArgumentErrorWithUsage(
		fmt.Sprintf("missing required flag(s): %s", strings.Join(missing, ", ")),
		"sdk-lints update-changelog --smithy-version <v> --sdk-version <v> --date <date>",
	)
}

func runUpdateChangelog(cmd *cobra.Command, _ []string) error {
	commandRan = true
	if err := requireReleaseFlags(); err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd, true)
	if err != nil {
		return err
	}
	cfg := ws.Config.Changelog

	updater := &changelog.Updater{
		Paths: changelog.Paths{
			Pending:        ws.Abs(cfg.Pending),
			SmithyDocument: ws.Abs(cfg.SmithyDocument),
			SDKDocument:    ws.Abs(cfg.SDKDocument),
		},
		Render: changelog.RenderOptions{
			ReferenceURL: cfg.ReferenceURL,
			Maintainers:  cfg.Maintainers,
		},
		Log: logger,
	}
	versions := changelog.Versions{Smithy: smithyVersionFlag, SDK: sdkVersionFlag, Date: releaseDateFlag}

	summary, err := updater.Update(cmd.Context(), versions)
	if err != nil {
		var pendingErr *changelog.PendingError
		if errors.As(err, &pendingErr) {
			return clierrors.MalformedPendingChangelog(filepath.ToSlash(cfg.Pending), pendingErr.Err)
		}
		logger.Error("publishing changelog failed", err)
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "updating changelogs",
			"No file was modified; fix the problem above and run the command again")
	}

	out := cmd.OutOrStdout()
	if summary.Total() == 0 {
		fmt.Fprintln(out, "nothing to publish")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	for _, target := range changelog.Targets {
		n, ok := summary.Published[target]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s %s %s: %d entr%s\n", green("published"), target, versions.For(target), n, plural(n))
	}
	for _, path := range summary.Written {
		logger.Debugf("wrote %s", path)
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
