// Package version reports the build version of varbrowse.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/rshade/varbrowse/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var version = ""

const develVersion = "dev"

// GetVersion returns the linker-set version, else the module version from the
// build info, else "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return develVersion
}
