// Package build contains build-related variables set at compile time.
package build

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/prometheus/common/version"
)

var (
	Version = "1.0.0"
	Time    = "N/A"

	GitSHA      = "N/A"
	GitBranch   = "N/A"
	GitDirtyStr = "-1"
	GitDirty    int
)

func init() {
	GitDirty, _ = strconv.Atoi(GitDirtyStr)

	version.Version = Version
	version.Revision = GitSHA
	version.Branch = GitBranch
	version.BuildDate = Time
}

const tmplt = `
%s

GENERAL
  GOARCH:             %s
  GOOS:               %s
  Git Dirty Files:    %d
`

// Summary describes the build of program, as printed by --version.
func Summary(program string) string {
	return fmt.Sprintf(strings.TrimSpace(tmplt),
		version.Print(program),
		runtime.GOARCH,
		runtime.GOOS,
		GitDirty,
	)
}
