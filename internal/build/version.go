// Package build provides version and build information for whatsnew.
// This package has no dependencies on other internal packages so it can be
// imported from anywhere.
package build

import (
	"fmt"
	"runtime"
)

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

// UserAgent identifies whatsnew when fetching a served changelog.
func UserAgent() string {
	return fmt.Sprintf("whatsnew/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
