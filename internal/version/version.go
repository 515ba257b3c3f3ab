// Package version holds the sdk-lints build information.
// It has no dependencies so any package can import it.
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String formats the build information on one line.
func String() string {
	return fmt.Sprintf("sdk-lints %s (commit %s, built %s)", Version, Commit, BuildDate)
}
