package inject

import (
	"errors"
	"fmt"

	"github.com/fulmenhq/cwt/pkg/collect"
	"github.com/fulmenhq/cwt/pkg/header"
	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/fulmenhq/cwt/pkg/tags"
)

// headerSet maps extensions to header text in claim order.
type headerSet struct {
	order  []string
	text   map[string]string
	source map[string]string
}

func newHeaderSet() *headerSet {
	return &headerSet{text: map[string]string{}, source: map[string]string{}}
}

func (h *headerSet) len() int { return len(h.order) }

func (h *headerSet) lookup(ext string) (string, bool) {
	text, ok := h.text[ext]
	return text, ok
}

// claim binds ext to text unless an earlier template already owns it.
func (h *headerSet) claim(ext, text, from string) bool {
	if _, taken := h.text[ext]; taken {
		return false
	}
	h.order = append(h.order, ext)
	h.text[ext] = text
	h.source[ext] = from
	return true
}

// loadHeaders parses each template in order. Bad templates are logged and
// skipped; the returned paths are the templates that bound an extension.
func loadHeaders(traceID string, paths []string, table tags.Table) (*headerSet, []string) {
	set := newHeaderSet()
	var used []string

	for _, p := range paths {
		tmpl := header.Open(p, table)

		exts, err := tmpl.Extensions()
		if err != nil {
			if errors.Is(err, header.ErrUnsupportedMarker) {
				logger.Warn("Skipping template with unsupported marker", logger.TraceID(traceID), logger.Path(p), logger.Err(err))
			} else {
				logger.Warn("Skipping unreadable template", logger.TraceID(traceID), logger.Path(p), logger.Err(err))
			}
			continue
		}
		if len(exts) == 0 {
			logger.Warn("Skipping template that binds no extensions", logger.TraceID(traceID), logger.Path(p))
			continue
		}

		text, err := tmpl.Content()
		if err != nil {
			logger.Warn("Skipping unreadable template", logger.TraceID(traceID), logger.Path(p), logger.Err(err))
			continue
		}

		bound := 0
		for _, ext := range exts {
			if !set.claim(ext, text, p) {
				logger.Warn("Extension already claimed by an earlier template",
					logger.TraceID(traceID), logger.String("extension", ext),
					logger.Path(p), logger.String("claimed_by", set.source[ext]))
				continue
			}
			bound++
		}
		if bound > 0 {
			used = append(used, p)
			logger.Debug("Loaded template", logger.TraceID(traceID), logger.Path(p), logger.Strings("extensions", exts))
		}
	}
	return set, used
}

// Binding records which template owns an extension.
type Binding struct {
	Extension string `json:"extension"`
	Template  string `json:"template"`
}

func (h *headerSet) bindings() []Binding {
	out := make([]Binding, 0, len(h.order))
	for _, ext := range h.order {
		out = append(out, Binding{Extension: ext, Template: h.source[ext]})
	}
	return out
}

// Discover collects the templates under path and returns the extension
// bindings a run would use, in claim order. filter may be nil for the
// default header.Classifier.
func Discover(traceID, path string, filter collect.Filter, table tags.Table) ([]Binding, error) {
	if err := checkPath("TemplatePath", path, false); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = header.NewClassifier(traceID, table)
	}
	candidates, err := collect.Collect(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to collect templates under %s: %w", path, err)
	}
	set, _ := loadHeaders(traceID, candidates, table)
	return set.bindings(), nil
}
