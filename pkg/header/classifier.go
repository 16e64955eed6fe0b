package header

import (
	"errors"
	"io/fs"

	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/fulmenhq/cwt/pkg/tags"
)

// Classifier accepts directories and usable template files. It satisfies
// collect.Filter.
type Classifier struct {
	TraceID string
	Tags    tags.Table
}

// NewClassifier returns a classifier that tags its log lines with traceID
// and substitutes template content with table.
func NewClassifier(traceID string, table tags.Table) *Classifier {
	return &Classifier{TraceID: traceID, Tags: table}
}

// Accept reports whether path is a directory, or a readable text/plain file
// whose marker binds at least one extension. Rejections are logged.
func (c *Classifier) Accept(path string, info fs.FileInfo) bool {
	if info != nil && info.IsDir() {
		return true
	}

	ct, err := DetectContentType(path)
	if err != nil {
		logger.Warn("Template candidate is not readable", logger.TraceID(c.TraceID), logger.Path(path), logger.Err(err))
		return false
	}
	if !IsPlainText(ct) {
		logger.Debug("Template candidate is not plain text", logger.TraceID(c.TraceID), logger.Path(path), logger.String("content_type", ct))
		return false
	}

	exts, err := Open(path, c.Tags).Extensions()
	switch {
	case errors.Is(err, ErrNoMarker):
		logger.Debug("Template candidate has no marker line", logger.TraceID(c.TraceID), logger.Path(path))
		return false
	case err != nil:
		logger.Warn("Template candidate rejected", logger.TraceID(c.TraceID), logger.Path(path), logger.Err(err))
		return false
	case len(exts) == 0:
		logger.Warn("Template marker binds no extensions", logger.TraceID(c.TraceID), logger.Path(path))
		return false
	}
	return true
}
