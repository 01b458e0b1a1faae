// Package misc keeps build time information about the program.
package misc

import "runtime/debug"

// Set with -ldflags "-X fracbin/misc.version=... -X fracbin/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

const appName = "fracbin"

// GetAppName returns name of the program used for logs and reports.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns hash of the commit program was built from. When it was
// not injected during build we try vcs stamping from build info.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
