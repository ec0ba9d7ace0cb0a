// Package buildinfo carries release metadata injected at link time.
package buildinfo

import "runtime/debug"

// These values are injected via ldflags for release binaries.
// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// DisplayVersion returns the best available version string: the linked
// release version, the module version from build info, or "dev".
func DisplayVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
