package bitstream

// Version information, set by ldflags at build time.
var (
	// Version is the semantic version of the library.
	Version = "dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// VersionInfo returns a formatted version string.
func VersionInfo() string {
	return Version + " (" + GitCommit + ", " + BuildDate + ")"
}
