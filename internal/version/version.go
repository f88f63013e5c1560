// Package version exposes the build identity stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at release time via
// -ldflags "-X airemote/internal/version.Version=v0.3.0 ...".
// Unstamped builds identify as "dev".
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Info is the payload served at /api/version.
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
		"go_version": runtime.Version(),
	}
}

// String renders a one-line banner for -version output.
func String() string {
	return fmt.Sprintf("airemote %s (commit %s, built %s, %s)",
		Version, GitCommit, BuildTime, runtime.Version())
}
