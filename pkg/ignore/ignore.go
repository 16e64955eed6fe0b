// Package ignore provides gitignore-based file filtering using go-git
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// FileName is the repo-level ignore file read on top of .gitignore.
const FileName = ".cwtignore"

// Matcher answers ignore questions for paths under a single root.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher with layered ignore files:
// 1. .gitignore and related git ignore files (foundation)
// 2. .cwtignore at root (repo overrides)
// 3. ~/.cwt/.cwtignore (user overrides)
func NewMatcher(root string) (*Matcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ignore root: %w", err)
	}
	fs := osfs.New(absRoot)

	// .git is never a target, even without a .gitignore entry.
	allPatterns := []gitignore.Pattern{gitignore.ParsePattern(".git", nil)}

	// ReadPatterns with nil reads .gitignore files throughout the tree.
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	if repoPatterns, err := readIgnoreFile(filepath.Join(absRoot, FileName)); err == nil {
		for _, pattern := range repoPatterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		if userPatterns, err := readIgnoreFile(filepath.Join(homeDir, ".cwt", FileName)); err == nil {
			for _, pattern := range userPatterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	return &Matcher{
		root:    absRoot,
		matcher: gitignore.NewMatcher(allPatterns),
	}, nil
}

// readIgnoreFile reads patterns from a .cwtignore file.
func readIgnoreFile(path string) ([]string, error) {
	cleaned := filepath.Clean(path)
	if filepath.Base(cleaned) != FileName {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- basename allowlisted
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// IsIgnored checks if a file path should be ignored
func (m *Matcher) IsIgnored(path string) bool {
	return m.match(path, false)
}

// IsIgnoredDir checks if a directory should be ignored (and thus skipped during traversal)
func (m *Matcher) IsIgnoredDir(path string) bool {
	return m.match(path, true)
}

func (m *Matcher) match(path string, isDir bool) bool {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.root, path)
	}
	relPath, err := filepath.Rel(m.root, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == ".." || strings.HasPrefix(relPath, "../") {
		return false
	}

	pathParts := splitPath(relPath)
	if len(pathParts) == 0 {
		return false
	}
	return m.matcher.Match(pathParts, isDir)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}
	path = strings.TrimPrefix(path, "/")

	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
