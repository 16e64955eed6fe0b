// Package collect flattens a file or directory tree into an ordered list of
// files, gated by a Filter.
package collect

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/fulmenhq/cwt/pkg/safeio"
)

// Filter decides whether an entry takes part in a collection. For a
// directory the answer only controls descent; directories are never
// collected themselves.
type Filter interface {
	Accept(path string, info fs.FileInfo) bool
}

// FilterFunc is an adapter to allow the use of ordinary functions as a Filter.
type FilterFunc func(path string, info fs.FileInfo) bool

// Accept calls f(path, info).
func (f FilterFunc) Accept(path string, info fs.FileInfo) bool { return f(path, info) }

// Collect returns the files under root accepted by filter, in lexical walk
// order. A nil filter accepts every regular file.
//
// A regular file root is returned alone if accepted. A symlinked root
// directory is walked, but directory symlinks below it are never followed
// and file symlinks resolving outside root are skipped. Unreadable
// subdirectories are logged and skipped; only an error on root itself is
// returned.
func Collect(root string, filter Filter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			logger.Warn("Skipping root that is not a regular file", logger.Path(root),
				logger.String("mode", info.Mode().String()))
			return nil, nil
		}
		if accepts(filter, root, info) {
			return []string{root}, nil
		}
		return nil, nil
	}

	// WalkDir does not follow a symlinked root; a trailing separator makes
	// the lookup resolve it while children keep the caller's prefix.
	walkRoot := root
	if l, err := os.Lstat(root); err == nil && l.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	files := []string{}
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == walkRoot {
				return walkErr
			}
			logger.Warn("Skipping unreadable entry", logger.Path(path), logger.Err(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == walkRoot {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Skipping entry that vanished during walk", logger.Path(path), logger.Err(err))
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveSymlink(root, path)
			if !ok {
				return nil
			}
			info = target
		}

		if d.IsDir() {
			if !accepts(filter, path, info) {
				logger.Debug("Not descending into directory", logger.Path(path))
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if accepts(filter, path, info) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// resolveSymlink returns the target info of a file symlink that stays
// inside root.
func resolveSymlink(root, path string) (fs.FileInfo, bool) {
	target, err := os.Stat(path)
	if err != nil {
		logger.Warn("Skipping dangling symlink", logger.Path(path), logger.Err(err))
		return nil, false
	}
	if target.IsDir() {
		logger.Debug("Not following directory symlink", logger.Path(path))
		return nil, false
	}
	contained, err := safeio.IsContained(root, path)
	if err != nil || !contained {
		logger.Warn("Skipping symlink that resolves outside the root", logger.Path(path))
		return nil, false
	}
	return target, true
}

func accepts(filter Filter, path string, info fs.FileInfo) bool {
	return filter == nil || filter.Accept(path, info)
}
