// Package version holds the build information of the foldermgr binary.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/foldermgr/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/foldermgr/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/foldermgr/internal/version.Date={{.Date}}
)

// String formats the build information on one line.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
