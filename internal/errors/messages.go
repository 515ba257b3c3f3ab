package errors

import "fmt"

// Common error messages for the sdk-lints CLI.

// RepoRootNotFound is returned when no enclosing git repository exists.
func RepoRootNotFound(cause error) *CLIError {
	return WrapWithMessage(cause, Environment, "could not determine the repository root",
		"Run sdk-lints from inside a git working tree",
		"Check that the .git directory is readable",
	)
}

// InventoryUnavailable is returned when the tracked-file set cannot be listed.
func InventoryUnavailable(cause error) *CLIError {
	return WrapWithMessage(cause, Environment, "could not load the tracked file inventory",
		"Make sure HEAD points at a commit (an empty repository has no tracked files)",
		"Try the git CLI provider: SDK_LINTS_INVENTORY=cli",
	)
}

// NoLintsSelected is returned when check or fix is invoked without a selection.
func NoLintsSelected(command string, flags string) *CLIError {
	return NewArgumentErrorWithUsage(
		"no lints selected",
		fmt.Sprintf("sdk-lints %s [--all] %s", command, flags),
		"Pass --all to run every lint",
		"Or pick one or more categories with the flags above",
	)
}

// MalformedPendingChangelog is returned when CHANGELOG.next.toml cannot be
// loaded. No output document has been touched when this is reported.
func MalformedPendingChangelog(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Input, fmt.Sprintf("invalid pending changelog %s", path),
		"Fix the entry named above and run the command again",
		"Every entry needs message, author, references and meta",
		"Entries must live under [[smithy-rs]] or [[aws-sdk-rust]]",
	)
}

// LintFailures is returned when check or fix leaves violations behind.
func LintFailures(count int) *CLIError {
	return New(Runtime, fmt.Sprintf("%d lint violation(s) found", count))
}
