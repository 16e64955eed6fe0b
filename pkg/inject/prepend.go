/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package inject

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/fulmenhq/cwt/pkg/safeio"
	"github.com/fulmenhq/cwt/pkg/tags"
)

// targetFile is the part of *os.File the rewrite needs.
type targetFile interface {
	io.WriteSeeker
	io.Closer
}

func openOSFile(name string, flag int, perm os.FileMode) (targetFile, error) {
	return os.OpenFile(name, flag, perm) // #nosec G304 -- target paths come from the collector
}

// prepend rewrites path as header + LineSeparator + original bytes. The
// original bytes are copied to a backup first and written back if any step
// fails. The backup is always removed.
func (in *Injector) prepend(path, header string) (err error) {
	id := in.opts.TraceID

	backup, err := os.CreateTemp(in.opts.BackupDir, filepath.Base(path)+".*.bak")
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	defer func() {
		if cerr := backup.Close(); cerr != nil {
			logger.Debug("Failed to close backup", logger.TraceID(id), logger.Path(backup.Name()), logger.Err(cerr))
		}
		if rerr := os.Remove(backup.Name()); rerr != nil {
			logger.Warn("Failed to remove backup", logger.TraceID(id), logger.Path(backup.Name()), logger.Err(rerr))
		}
	}()

	if err := copyInto(backup, path); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}

	if err := in.rewrite(path, header, backup); err != nil {
		if rerr := restore(path, backup); rerr != nil {
			logger.Error("Failed to restore target from backup; file may be damaged",
				logger.TraceID(id), logger.Path(path), logger.String("backup", backup.Name()), logger.Err(rerr))
		}
		return err
	}
	return nil
}

func (in *Injector) rewrite(path, header string, backup *os.File) (err error) {
	dst, err := in.openFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := dst.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek %s: %w", path, err)
	}
	if _, err := io.WriteString(dst, header+tags.LineSeparator); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if _, err := backup.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind backup: %w", err)
	}
	if _, err := io.Copy(dst, backup); err != nil {
		return fmt.Errorf("failed to write body to %s: %w", path, err)
	}
	return nil
}

func copyInto(dst io.Writer, path string) error {
	src, err := os.Open(path) // #nosec G304 -- target paths come from the collector
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()
	_, err = io.Copy(dst, src)
	return err
}

// restore truncates path and writes the backup bytes back.
func restore(path string, backup *os.File) error {
	if _, err := backup.Seek(0, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(backup)
	if err != nil {
		return err
	}
	return safeio.WriteFilePreservePerms(path, data)
}
