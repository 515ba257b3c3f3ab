package cli

import (
	"fmt"

	"github.com/ariel-frischer/sdk-lints/internal/version"
	"github.com/spf13/cobra"
)

// SourceURL is where sdk-lints lives.
const SourceURL = "https://github.com/ariel-frischer/sdk-lints"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sdk-lints version",
	Args:  noArgs,
	Run: func(cmd *cobra.Command, args []string) {
		commandRan = true
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), SourceURL)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
