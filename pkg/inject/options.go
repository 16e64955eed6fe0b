package inject

import (
	"errors"
	"fmt"
	"os"

	"github.com/fulmenhq/cwt/pkg/collect"
	"github.com/fulmenhq/cwt/pkg/tags"
)

// ErrInvalidOptions is matched by every *ConfigError.
var ErrInvalidOptions = errors.New("invalid inject options")

// Options configures one batch run.
type Options struct {
	// TraceID correlates every log line of the run. Generated when empty.
	TraceID string

	// TemplatePath is a template file or a directory of templates.
	TemplatePath string
	// TemplateFilter replaces the default header.Classifier when set.
	TemplateFilter collect.Filter

	// AtLine is the 1-based insertion line. Only the top of the file is
	// supported; larger values are accepted with a warning.
	AtLine int

	// TargetPath is the file or directory tree to rewrite.
	TargetPath string
	// TargetFilter narrows the targets; nil means every regular file.
	TargetFilter collect.Filter

	DryRun       bool
	SkipExisting bool

	// BackupDir holds per-file backups during a rewrite. Empty means os.TempDir.
	BackupDir string

	// Tags substitutes template tokens. Nil means tags.Default().
	Tags *tags.Table
}

// ConfigError names the option that made a run impossible. Nothing has been
// touched when one is returned.
type ConfigError struct {
	Field string
	Path  string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Path, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() []error { return []error{ErrInvalidOptions, e.Err} }

var (
	errRequired    = errors.New("path is required")
	errNotReadable = errors.New("not readable")
	errNotWritable = errors.New("not writable")
)

// Validate checks the options without touching any file.
func (o Options) Validate() error {
	if err := checkPath("TemplatePath", o.TemplatePath, false); err != nil {
		return err
	}
	if err := checkPath("TargetPath", o.TargetPath, true); err != nil {
		return err
	}
	if o.AtLine < 1 {
		return &ConfigError{Field: "AtLine", Err: fmt.Errorf("line numbers start at 1, got %d", o.AtLine)}
	}
	if o.BackupDir != "" {
		info, err := os.Stat(o.BackupDir)
		if err != nil {
			return &ConfigError{Field: "BackupDir", Path: o.BackupDir, Err: err}
		}
		if !info.IsDir() {
			return &ConfigError{Field: "BackupDir", Path: o.BackupDir, Err: errors.New("not a directory")}
		}
	}
	return nil
}

func checkPath(field, path string, writable bool) error {
	if path == "" {
		return &ConfigError{Field: field, Err: errRequired}
	}
	if _, err := os.Stat(path); err != nil {
		return &ConfigError{Field: field, Path: path, Err: err}
	}
	if !canRead(path) {
		return &ConfigError{Field: field, Path: path, Err: errNotReadable}
	}
	if writable && !canWrite(path) {
		return &ConfigError{Field: field, Path: path, Err: errNotWritable}
	}
	return nil
}
