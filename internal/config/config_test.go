package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadForTest(t *testing.T, dir string, opts LoadOptions) (*Configuration, error) {
	t.Helper()
	opts.ProjectDir = dir
	opts.SkipUserConfig = true
	if opts.WarningWriter == nil {
		opts.WarningWriter = &bytes.Buffer{}
	}
	return LoadWithOptions(opts)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadForTest(t, t.TempDir(), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, InventoryGoGit, cfg.Inventory)
	assert.Equal(t, []string{"rust-runtime", "aws/rust-runtime"}, cfg.CrateRoots)
	assert.Equal(t, "CHANGELOG.next.toml", cfg.Changelog.Pending)
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog.SmithyDocument)
	assert.Equal(t, "aws/SDK_CHANGELOG.md", cfg.Changelog.SDKDocument)
	assert.Equal(t, "Apache-2.0", cfg.Crate.License)
	assert.Equal(t, DefaultReadmeFooter, cfg.Readme.Footer)
	assert.Equal(t, DefaultDocsRsMetadata, cfg.DocsRs.Metadata)
	assert.Equal(t, 5, cfg.Copyright.SearchLines)
	assert.Len(t, cfg.Copyright.Header, 2)
}

func TestLoadProjectConfig(t *testing.T) {
	tests := map[string]struct {
		files  map[string]string
		check  func(t *testing.T, cfg *Configuration)
		warned bool
	}{
		"yaml overrides defaults": {
			files: map[string]string{
				ProjectConfigFile: "crate_roots: [crates]\nchangelog:\n  pending: NEXT.toml\n",
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, []string{"crates"}, cfg.CrateRoots)
				assert.Equal(t, "NEXT.toml", cfg.Changelog.Pending)
				assert.Equal(t, "CHANGELOG.md", cfg.Changelog.SmithyDocument)
			},
		},
		"json is accepted": {
			files: map[string]string{
				ProjectJSONConfigFile: `{"inventory": "cli"}`,
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, InventoryCLI, cfg.Inventory)
			},
		},
		"yaml wins over json": {
			files: map[string]string{
				ProjectConfigFile:     "inventory: go-git\n",
				ProjectJSONConfigFile: `{"inventory": "cli"}`,
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, InventoryGoGit, cfg.Inventory)
			},
			warned: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for rel, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644))
			}

			var warnings bytes.Buffer
			cfg, err := loadForTest(t, dir, LoadOptions{WarningWriter: &warnings})
			require.NoError(t, err)
			tt.check(t, cfg)
			assert.Equal(t, tt.warned, warnings.Len() > 0)
		})
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SDK_LINTS_INVENTORY", "cli")
	t.Setenv("SDK_LINTS_CHANGELOG__SDK_DOCUMENT", "sdk/CHANGELOG.md")

	cfg, err := loadForTest(t, t.TempDir(), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, InventoryCLI, cfg.Inventory)
	assert.Equal(t, "sdk/CHANGELOG.md", cfg.Changelog.SDKDocument)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]struct {
		content   string
		wantField string
	}{
		"unknown inventory": {
			content:   "inventory: svn\n",
			wantField: "inventory",
		},
		"reference url without placeholders": {
			content:   "changelog:\n  reference_url: https://example.com\n",
			wantField: "changelog.reference_url",
		},
		"reference url with extra percent": {
			content:   "changelog:\n  reference_url: https://example.com/%s/issues%2F/%s\n",
			wantField: "changelog.reference_url",
		},
		"reference url with a third verb": {
			content:   "changelog:\n  reference_url: https://example.com/%s/%s/%d\n",
			wantField: "changelog.reference_url",
		},
		"search lines below one": {
			content:   "copyright:\n  search_lines: 0\n",
			wantField: "copyright.search_lines",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte(tt.content), 0o644))

			_, err := loadForTest(t, dir, LoadOptions{})
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidReferenceURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		url  string
		want bool
	}{
		"default template": {url: "https://github.com/awslabs/%s/issues/%s", want: true},
		"one placeholder":  {url: "https://example.com/%s", want: false},
		"escaped percent":  {url: "https://example.com/%s/a%%2Fb/%s", want: false},
		"encoded slash":    {url: "https://example.com/%s%2F%s", want: false},
		"other verb":       {url: "https://example.com/%s/%d/%s", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validReferenceURL(tt.url))
		})
	}
}

func TestLoadExplicitConfigMustExist(t *testing.T) {
	_, err := loadForTest(t, t.TempDir(), LoadOptions{ProjectConfigPath: "/nonexistent/sdk-lints.yml"})
	assert.Error(t, err)
}

func TestValidateYAMLSyntax(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("crate_roots: [unclosed\n"), 0o644))

	err := ValidateYAMLSyntax(bad)
	require.Error(t, err)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))

	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(dir, "missing.yml")))
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Inventory":      "inventory",
		"DocsRs":         "docs_rs",
		"SDKDocument":    "sdk_document",
		"SmithyDocument": "smithy_document",
		"SearchLines":    "search_lines",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, toSnakeCase(in))
		})
	}
}
