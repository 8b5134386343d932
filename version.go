package audioinfo

import (
	"fmt"
	"runtime"
)

// Version is the semantic version of the audioinfo library.
const Version = "0.1.0"

// gitCommit is set at build time:
//
//	go build -ldflags="-X github.com/simonhull/audioinfo.gitCommit=$(git rev-parse --short HEAD)"
var gitCommit = "unknown"

// VersionString returns the version, commit and Go version on one line,
// e.g. "0.1.0 (commit 1a2b3c4, go1.26.0)".
func VersionString() string {
	return fmt.Sprintf("%s (commit %s, %s)", Version, gitCommit, runtime.Version())
}
