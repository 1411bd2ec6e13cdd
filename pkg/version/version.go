// Package version provides version information for the nodetomd CLI tool.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the binary name reported in logs and version output.
const AppName = "nodetomd"

// These variables are populated at build time using -ldflags.
// Example:
// go build -ldflags "-X 'nodetomd/pkg/version.Version=1.2.3' -X 'nodetomd/pkg/version.Commit=abcdefg' -X 'nodetomd/pkg/version.BuildTime=2024-04-27T15:04:05Z'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info contains comprehensive version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // OS and architecture
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the version information on one line, e.g.
// nodetomd version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.23.1 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"%s version %s (commit: %s) built at %s with %s on %s",
		AppName,
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
