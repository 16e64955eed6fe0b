//go:build !unix

package inject

import "os"

func canRead(path string) bool {
	f, err := os.Open(path) // #nosec G304 -- probe only
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func canWrite(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().Perm()&0o200 != 0
}
