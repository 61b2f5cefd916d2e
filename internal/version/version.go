package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit string
)

// Info renders the build information printed by the version command.
func Info() string {
	commit := GitCommit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("socialite %s\n- git/commit: %s\n- os/platform: %s/%s\n- go/version: %s",
		Version, commit, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
