package version

import "fmt"

var (
	// Version is the current version of aztoolkit, set via build flags
	Version = "dev"

	// Commit is the git commit hash, set via build flags
	Commit = "none"
)

// FullVersion returns the full version string
func FullVersion() string {
	return fmt.Sprintf("aztoolkit %s, build %s", Version, Commit)
}
