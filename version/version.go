package version

import "runtime/debug"

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/chirpaudio/chirp/version.Version=$(git describe --dirty)"

var Version string

// String returns the version when set, and otherwise the vcs revision
// stamped into the build info, with a -dirty suffix for modified trees.
func String() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		revision, modified := "", false
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value == "true"
			}
		}
		if len(revision) >= 7 {
			if modified {
				return revision[:7] + "-dirty"
			}
			return revision[:7]
		}
	}
	return "unknown"
}
