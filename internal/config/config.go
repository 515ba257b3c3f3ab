// sdk-lints - Repository hygiene lints and changelog publishing
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/sdk-lints

// Package config provides hierarchical configuration management for sdk-lints using koanf.
// Configuration is loaded with priority: environment variables > project config
// (<repo>/.sdk-lints.yml, or .sdk-lints.json) > user config (~/.config/sdk-lints/config.yml)
// > defaults. Every value has a default matching the smithy-rs repository layout, so
// no config file is needed there.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nesting levels: SDK_LINTS_CHANGELOG__PENDING -> changelog.pending.
const EnvPrefix = "SDK_LINTS_"

// Inventory provider names.
const (
	InventoryGoGit = "go-git"
	InventoryCLI   = "cli"
)

// Configuration represents the sdk-lints configuration
type Configuration struct {
	// Inventory selects how tracked files are listed: "go-git" (default) or "cli".
	Inventory string `koanf:"inventory" yaml:"inventory" validate:"oneof=go-git cli"`

	// CrateRoots are repository-relative directories whose immediate
	// subdirectories containing a Cargo.toml are runtime crates.
	CrateRoots []string `koanf:"crate_roots" yaml:"crate_roots" validate:"required,min=1,dive,required"`

	Changelog ChangelogConfig `koanf:"changelog" yaml:"changelog"`
	Readme    ReadmeConfig    `koanf:"readme" yaml:"readme"`
	Crate     CrateConfig     `koanf:"crate" yaml:"crate"`
	DocsRs    DocsRsConfig    `koanf:"docs_rs" yaml:"docs_rs"`
	Copyright CopyrightConfig `koanf:"copyright" yaml:"copyright"`
	Todos     TodosConfig     `koanf:"todos" yaml:"todos"`
}

// ChangelogConfig locates the pending-entries queue and the two documents.
type ChangelogConfig struct {
	Pending        string `koanf:"pending" yaml:"pending" validate:"required"`
	SmithyDocument string `koanf:"smithy_document" yaml:"smithy_document" validate:"required"`
	SDKDocument    string `koanf:"sdk_document" yaml:"sdk_document" validate:"required"`
	// Maintainers are excluded from the rendered contributors list.
	Maintainers []string `koanf:"maintainers" yaml:"maintainers"`
	// ReferenceURL is a printf template receiving the repository and the number.
	ReferenceURL string `koanf:"reference_url" yaml:"reference_url" validate:"required"`
}

// ReadmeConfig holds the footer every crate README must carry.
type ReadmeConfig struct {
	Footer string `koanf:"footer" yaml:"footer" validate:"required"`
}

// CrateConfig holds the manifest metadata every runtime crate must declare.
type CrateConfig struct {
	Authors []string `koanf:"authors" yaml:"authors" validate:"required,min=1,dive,required"`
	License string   `koanf:"license" yaml:"license" validate:"required"`
}

// DocsRsConfig holds the docs.rs metadata block kept inside each Cargo.toml.
type DocsRsConfig struct {
	Metadata string `koanf:"metadata" yaml:"metadata" validate:"required"`
}

// CopyrightConfig controls the copyright-header lint.
type CopyrightConfig struct {
	Header      []string `koanf:"header" yaml:"header" validate:"required,min=1,dive,required"`
	Include     []string `koanf:"include" yaml:"include" validate:"required,min=1"`
	Exclude     []string `koanf:"exclude" yaml:"exclude"`
	SearchLines int      `koanf:"search_lines" yaml:"search_lines" validate:"min=1"`
}

// TodosConfig controls the todo-context lint.
type TodosConfig struct {
	Include []string `koanf:"include" yaml:"include" validate:"required,min=1"`
	Exclude []string `koanf:"exclude" yaml:"exclude"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is the repository root searched for .sdk-lints.yml / .sdk-lints.json.
	ProjectDir string
	// ProjectConfigPath overrides the project config path (e.g. --config).
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file (used by tests).
	SkipUserConfig bool
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/sdk-lints/config.yml when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. An explicit path must exist;
// the default locations are optional. When both YAML and JSON exist the YAML
// file wins and a warning is emitted.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	if opts.ProjectConfigPath != "" {
		if !fileExists(opts.ProjectConfigPath) {
			return fmt.Errorf("config file %s does not exist", opts.ProjectConfigPath)
		}
		return loadFile(k, opts.ProjectConfigPath, "project")
	}

	yamlPath := filepath.Join(opts.ProjectDir, ProjectConfigFile)
	jsonPath := filepath.Join(opts.ProjectDir, ProjectJSONConfigFile)
	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if jsonExists && !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: both %s and %s exist; using %s\n\n", yamlPath, jsonPath, yamlPath)
		}
		return loadFile(k, yamlPath, "project")
	case jsonExists:
		return loadFile(k, jsonPath, "project")
	}
	return nil
}

// loadFile validates syntax and loads a YAML or JSON file based on its extension.
func loadFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: SDK_LINTS_CHANGELOG__SDK_DOCUMENT -> changelog.sdk_document
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
