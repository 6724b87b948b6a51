package id3meta

import "runtime"

// Version is the semantic version of the id3meta library.
const Version = "0.2.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string
	GitCommit string // set via -ldflags at build time
	BuildTime string // set via -ldflags at build time
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// Example build command:
//
//	go build -ldflags="-X github.com/simonhull/id3meta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/id3meta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
