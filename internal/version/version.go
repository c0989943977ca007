// Package version provides build and version information for the CLI.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Build information set via ldflags during release builds.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// BuildInfo contains complete build information.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// GetVersion returns the current version from the embedded VERSION file.
func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

// GetBuildInfo returns complete build information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   GetVersion(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// PrintVersion prints version information to stdout.
func PrintVersion() {
	info := GetBuildInfo()
	fmt.Printf("Version:    %s\n", info.Version)
	fmt.Printf("Git Commit: %s\n", info.GitCommit)
	fmt.Printf("Build Time: %s\n", info.BuildTime)
	fmt.Printf("Go Version: %s\n", info.GoVersion)
}
