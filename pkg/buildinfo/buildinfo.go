package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// BinaryVersion is set at build time via -ldflags. Defaults to "dev".
var BinaryVersion = "dev"

// ModuleVersion returns the module version embedded by the Go toolchain (when available).
func ModuleVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return ""
}

// Version prefers the ldflags stamp and falls back to the module version for
// `go install` builds.
func Version() string {
	if BinaryVersion != "dev" && BinaryVersion != "" {
		return BinaryVersion
	}
	if mv := ModuleVersion(); mv != "" {
		return mv
	}
	return BinaryVersion
}

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Current returns build information for the running binary.
func Current() Info {
	return Info{
		Version:   Version(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
