//go:build linux || darwin || freebsd || netbsd || openbsd

package tags

import "golang.org/x/sys/unix"

// osVersion returns the kernel release, e.g. "6.8.0-45-generic".
func osVersion() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Release[:])
}
