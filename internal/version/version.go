// Package version carries build metadata for the exporter, injected at build
// time via -ldflags.
package version

var (
	// Version is the release version of the exporter.
	Version = "dev"
	// GitSHA is the git commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String renders the build metadata as a single line.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
