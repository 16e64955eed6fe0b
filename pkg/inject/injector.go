// Package inject prepends license headers to a tree of files, choosing the
// header for each file by extension.
package inject

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/cwt/pkg/collect"
	"github.com/fulmenhq/cwt/pkg/header"
	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/fulmenhq/cwt/pkg/tags"
	"github.com/fulmenhq/cwt/pkg/textfile"
	"github.com/fulmenhq/cwt/pkg/traceid"
)

// Injector runs one validated batch. It is not safe for concurrent use, and
// nothing else may modify the target tree while Run is in progress.
type Injector struct {
	opts Options
	tags tags.Table

	openFile func(name string, flag int, perm os.FileMode) (targetFile, error)
}

// New validates opts and returns an Injector ready to run.
func New(opts Options) (*Injector, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.TraceID = traceid.Resolve(opts.TraceID)

	table := tags.Default()
	if opts.Tags != nil {
		table = *opts.Tags
	}
	return &Injector{opts: opts, tags: table, openFile: openOSFile}, nil
}

// Run validates opts and runs the batch. The error is non-nil only for
// invalid options; per-file problems are reported in the Result.
func Run(opts Options) (*Result, error) {
	in, err := New(opts)
	if err != nil {
		return nil, err
	}
	return in.Run(), nil
}

// Run processes all templates, then all targets, sequentially.
func (in *Injector) Run() *Result {
	id := in.opts.TraceID
	res := &Result{TraceID: id, DryRun: in.opts.DryRun}

	if in.opts.AtLine > 1 {
		logger.Warn("Only insertion at the top of the file is supported; prepending instead",
			logger.TraceID(id), logger.Int("at_line", in.opts.AtLine))
	}

	templateFilter := in.opts.TemplateFilter
	if templateFilter == nil {
		templateFilter = header.NewClassifier(id, in.tags)
	}
	candidates, err := collect.Collect(in.opts.TemplatePath, templateFilter)
	if err != nil {
		res.Err = fmt.Errorf("failed to collect templates under %s: %w", in.opts.TemplatePath, err)
		logger.Error("Template discovery failed", logger.TraceID(id), logger.Err(res.Err))
		return res
	}

	headers, used := loadHeaders(id, candidates, in.tags)
	res.Templates = used
	res.Extensions = headers.order
	if headers.len() == 0 {
		logger.Info("No usable templates found, nothing to do", logger.TraceID(id), logger.Path(in.opts.TemplatePath))
		return res
	}
	logger.Info("Templates loaded", logger.TraceID(id), logger.Int("templates", len(used)), logger.Strings("extensions", headers.order))

	targets, err := collect.Collect(in.opts.TargetPath, in.opts.TargetFilter)
	if err != nil {
		res.Err = fmt.Errorf("failed to collect targets under %s: %w", in.opts.TargetPath, err)
		logger.Error("Target discovery failed", logger.TraceID(id), logger.Err(res.Err))
		return res
	}
	res.Total = len(targets)

	for _, target := range targets {
		in.process(target, headers, res)
	}

	logger.Info("Injection finished", logger.TraceID(id),
		logger.Int("total", res.Total),
		logger.Int("succeeded", len(res.Succeeded)),
		logger.Int("ignored", len(res.Ignored)),
		logger.Int("failed", len(res.Failed)),
		logger.Bool("success", res.Success()))
	return res
}

// process puts target into exactly one bucket.
func (in *Injector) process(target string, headers *headerSet, res *Result) {
	id := in.opts.TraceID

	if !canRead(target) {
		logger.Warn("Target is not readable", logger.TraceID(id), logger.Path(target))
		res.fail(target, ReasonReadDenied)
		return
	}
	if !canWrite(target) {
		logger.Warn("Target is not writable", logger.TraceID(id), logger.Path(target))
		res.fail(target, ReasonWriteDenied)
		return
	}

	ext := Extension(target)
	if ext == "" {
		logger.Warn("Target has no file extension", logger.TraceID(id), logger.Path(target))
		res.fail(target, ReasonUnknownExtension)
		return
	}

	text, ok := headers.lookup(ext)
	if !ok {
		logger.Debug("No header for extension", logger.TraceID(id), logger.Path(target), logger.String("extension", ext))
		res.ignore(target, ReasonNoHeader)
		return
	}

	if in.opts.SkipExisting {
		present, err := startsWith(target, text)
		if err != nil {
			logger.Warn("Failed to read target", logger.TraceID(id), logger.Path(target), logger.Err(err))
			res.fail(target, ReasonReadDenied)
			return
		}
		if present {
			logger.Debug("Header already present", logger.TraceID(id), logger.Path(target))
			res.ignore(target, ReasonHeaderPresent)
			return
		}
	}

	if in.opts.DryRun {
		logger.Info("Would inject header", logger.TraceID(id), logger.Path(target), logger.String("extension", ext))
		res.succeed(target)
		return
	}

	if err := in.prepend(target, text); err != nil {
		logger.Error("Failed to inject header", logger.TraceID(id), logger.Path(target), logger.Err(err))
		res.fail(target, ReasonWriteFailure)
		return
	}
	logger.Debug("Injected header", logger.TraceID(id), logger.Path(target))
	res.succeed(target)
}

// Extension returns the lower-cased text after the last dot of path's base
// name, or "" when there is none.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// startsWith reports whether the file at path begins with text followed by a
// line separator. Line endings in the file head are normalized first, so a
// header committed with CRLF endings still matches on Unix.
func startsWith(path, text string) (bool, error) {
	want := []byte(text + tags.LineSeparator)
	f, err := os.Open(path) // #nosec G304 -- target paths come from the collector
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	// CRLF doubles the width of every line ending at most.
	buf := make([]byte, 2*len(want))
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	head, _ := textfile.NormalizeLineEndings(buf[:n], tags.LineSeparator)
	return bytes.HasPrefix(head, want), nil
}
