package collect

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/cwt/pkg/ignore"
)

// All accepts an entry only when every non-nil filter accepts it.
func All(filters ...Filter) Filter {
	var active []Filter
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return FilterFunc(func(path string, info fs.FileInfo) bool {
		for _, f := range active {
			if !f.Accept(path, info) {
				return false
			}
		}
		return true
	})
}

// Globs builds a filter from doublestar patterns evaluated against the path
// relative to root. Patterns without a slash also match the base name.
// Excludes prune directories; includes only apply to files. Returns nil when
// both lists are empty.
func Globs(root string, include, exclude []string) (Filter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	return FilterFunc(func(path string, info fs.FileInfo) bool {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			return !matchDir(exclude, rel)
		}
		if matchAny(exclude, rel) {
			return false
		}
		return len(include) == 0 || matchAny(include, rel)
	}), nil
}

func matchAny(patterns []string, rel string) bool {
	base := filepath.Base(rel)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}

// matchDir treats "dir/**" as matching "dir" itself so the walk can prune it.
func matchDir(patterns []string, rel string) bool {
	if matchAny(patterns, rel) {
		return true
	}
	for _, p := range patterns {
		trimmed := strings.TrimSuffix(filepath.ToSlash(p), "/**")
		if trimmed != filepath.ToSlash(p) && matchAny([]string{trimmed}, rel) {
			return true
		}
	}
	return false
}

// Ignored rejects entries matched by an ignore.Matcher. Relative walk paths
// are resolved against the working directory, not the matcher root.
func Ignored(m *ignore.Matcher) Filter {
	if m == nil {
		return nil
	}
	return FilterFunc(func(path string, info fs.FileInfo) bool {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if info.IsDir() {
			return !m.IsIgnoredDir(path)
		}
		return !m.IsIgnored(path)
	})
}
