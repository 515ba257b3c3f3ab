package config

// DefaultReadmeFooter is the footer every runtime crate README carries.
const DefaultReadmeFooter = `This crate is part of the [AWS SDK for Rust](https://awslabs.github.io/aws-sdk-rust/) and the [smithy-rs](https://github.com/awslabs/smithy-rs) code generator. In most cases, it should not be used directly.`

// DefaultDocsRsMetadata is the docs.rs block kept inside each runtime Cargo.toml.
const DefaultDocsRsMetadata = `[package.metadata.docs.rs]
all-features = true
targets = ["x86_64-unknown-linux-gnu"]
rustdoc-args = ["--cfg", "docsrs"]`

// GetDefaultConfigTemplate returns a commented project config template.
func GetDefaultConfigTemplate() string {
	return `# sdk-lints configuration (.sdk-lints.yml at the repository root)

inventory: go-git                     # Tracked file listing: go-git | cli
crate_roots:                          # Directories holding runtime crates
  - rust-runtime
  - aws/rust-runtime

changelog:
  pending: CHANGELOG.next.toml        # Pending entries queue
  smithy_document: CHANGELOG.md       # smithy-rs changelog
  sdk_document: aws/SDK_CHANGELOG.md  # aws-sdk-rust changelog
  maintainers: []                     # Authors left out of the contributors list
  reference_url: https://github.com/awslabs/%s/issues/%s

crate:
  authors:
    - AWS Rust SDK Team <aws-sdk-rust@amazon.com>
  license: Apache-2.0

copyright:
  search_lines: 5                     # Header must appear within the first N lines
  include: ["**/*.rs", "**/*.kt", "**/*.kts", "**/*.py", "**/*.sh"]
  exclude: ["**/generated/**", "**/test-data/**"]

todos:
  include: ["**/*.rs", "**/*.kt"]
  exclude: []
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"inventory":   InventoryGoGit,
		"crate_roots": []string{"rust-runtime", "aws/rust-runtime"},
		"changelog": map[string]interface{}{
			"pending":         "CHANGELOG.next.toml",
			"smithy_document": "CHANGELOG.md",
			"sdk_document":    "aws/SDK_CHANGELOG.md",
			"maintainers": []string{
				"aws-sdk-rust-ci",
				"jdisanti",
				"rcoh",
				"Velfi",
			},
			"reference_url": "https://github.com/awslabs/%s/issues/%s",
		},
		"readme": map[string]interface{}{
			"footer": DefaultReadmeFooter,
		},
		"crate": map[string]interface{}{
			"authors": []string{"AWS Rust SDK Team <aws-sdk-rust@amazon.com>"},
			"license": "Apache-2.0",
		},
		"docs_rs": map[string]interface{}{
			"metadata": DefaultDocsRsMetadata,
		},
		"copyright": map[string]interface{}{
			"header": []string{
				"Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.",
				"SPDX-License-Identifier: Apache-2.0",
			},
			"include":      []string{"**/*.rs", "**/*.kt", "**/*.kts", "**/*.py", "**/*.sh"},
			"exclude":      []string{"**/generated/**", "**/test-data/**"},
			"search_lines": 5,
		},
		"todos": map[string]interface{}{
			"include": []string{"**/*.rs", "**/*.kt"},
			"exclude": []string{},
		},
	}
}
