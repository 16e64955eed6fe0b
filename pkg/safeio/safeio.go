package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeUserPath trims a user-provided path, accepts either slash style
// and returns it in the platform's native form. Empty input stays empty.
func NormalizeUserPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(p))
}

// IsContained reports whether path resolves to a location inside baseDir.
// Symlinks on both sides are resolved first, so a link pointing out of the
// tree is reported as not contained.
func IsContained(baseDir, path string) (bool, error) {
	baseAbs, err := resolve(baseDir)
	if err != nil {
		return false, errors.New("failed to resolve base directory")
	}
	pathAbs, err := resolve(path)
	if err != nil {
		return false, errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseAbs, pathAbs)
	if err != nil {
		return false, errors.New("failed to compute relative path")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return true, nil
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return os.WriteFile(path, data, mode)
}
