//go:build windows

package tags

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersion returns major.minor.build, e.g. "10.0.22631".
func osVersion() string {
	v := windows.RtlGetVersion()
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
