//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package tags

func osVersion() string { return "" }
