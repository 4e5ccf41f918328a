// Package version derives the running build's identity from the binary's
// embedded VCS metadata.
package version

import "runtime/debug"

// AppName is used in version strings and startup logs.
const AppName = "bpchat"

// GitCommit is the short commit hash the binary was built from, or "dev"
// when no VCS metadata is embedded (go test, builds outside a checkout).
var GitCommit = readCommit()

func readCommit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 8 {
				return s.Value[:8]
			}
			return s.Value
		}
	}
	return "dev"
}

// Full returns "bpchat/<commit>" for startup logs.
func Full() string {
	return AppName + "/" + GitCommit
}
