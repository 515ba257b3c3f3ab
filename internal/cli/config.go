package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/sdk-lints/internal/config"
	clierrors "github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/ariel-frischer/sdk-lints/internal/fileio"
	"github.com/ariel-frischer/sdk-lints/internal/git"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sdk-lints configuration",
	Long: `Manage sdk-lints configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (SDK_LINTS_*, nested keys joined by __)
  2. Project config (.sdk-lints.yml at the repository root)
  3. User config (~/.config/sdk-lints/config.yml)
  4. Built-in defaults

Every setting has a default matching the smithy-rs layout.`,
	Example: `  # Show the effective configuration
  sdk-lints config show

  # Write a commented project config
  sdk-lints config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commandRan = true
		ws, err := loadWorkspace(cmd, true)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(ws.Config); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented .sdk-lints.yml at the repository root",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commandRan = true
		root, err := git.FindRoot(cmd.Context(), directoryFlag)
		if err != nil {
			return clierrors.RepoRootNotFound(err)
		}

		path := filepath.Join(root, config.ProjectConfigFile)
		if _, err := os.Stat(path); err == nil && !configForceFlag {
			return clierrors.New(clierrors.Argument,
				fmt.Sprintf("%s already exists", config.ProjectConfigFile),
				"Pass --force to overwrite it",
			)
		}
		if err := fileio.WriteFile(path, []byte(config.GetDefaultConfigTemplate())); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime, "Check that the repository root is writable")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForceFlag, "force", false, "Overwrite an existing project config")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
