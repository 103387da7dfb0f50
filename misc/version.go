// Package misc keeps program identity values available to all packages.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// set by linker flags when building release binaries
var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns name of the running executable without extension.
func GetAppName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetVersion returns program version.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns VCS revision program was built from, if known.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
