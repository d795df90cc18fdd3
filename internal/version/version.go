// Package version holds build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/pthm/docgrade/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Build is the metadata of the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Current returns the build metadata. Binaries installed with go install
// carry no ldflags, so the module version from the embedded build info is
// used instead.
func Current() Build {
	b := Build{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if b.Version != "dev" {
		return b
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	return b
}

// String formats the build as a single line.
func (b Build) String() string {
	return fmt.Sprintf("docgrade %s (%s) built on %s with %s", b.Version, b.Commit, b.Date, b.GoVersion)
}
