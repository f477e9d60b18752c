// Package misc keeps build time program information.
package misc

// Set with -ldflags "-X stylekit/misc.version=... -X stylekit/misc.gitHash=..."
var (
	appName = "skit"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
