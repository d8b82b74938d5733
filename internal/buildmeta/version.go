// Package buildmeta holds build information for the devkit binary.
//
// Release builds set the variables with:
//
//	go build -ldflags="-X github.com/kb-labs/devkit/internal/buildmeta.Version=v1.0.0 ..."
//
// Builds without ldflags, such as go install, fall back to the module and VCS
// data embedded by the Go toolchain.
//
//nolint:gochecknoglobals
package buildmeta

import "runtime/debug"

var (
	// Version is the semantic version of the build (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the Git SHA of the build.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the version, commit and date of a build.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Current returns the ldflags values, completed from the embedded build info
// where they were left at their defaults.
func Current() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	return fill(info, buildInfo)
}

func fill(info Info, buildInfo *debug.BuildInfo) Info {
	if info.Version == "dev" && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		info.Version = buildInfo.Main.Version
	}

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = setting.Value
			}
		}
	}

	return info
}
