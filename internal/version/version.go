// Package version carries build metadata injected at link time via
// -ldflags "-X github.com/launchpadhq/launchpad/internal/version.Version=…".
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)
