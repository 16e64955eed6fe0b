// Package report renders an inject.Result for people and for CI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/cwt/pkg/inject"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatJUnit    Format = "junit"
	FormatTemplate Format = "template"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatJUnit, FormatTemplate}
}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// Counts summarizes the buckets.
type Counts struct {
	Total     int `json:"total" yaml:"total" toml:"total" handlebars:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded" toml:"succeeded" handlebars:"succeeded"`
	Ignored   int `json:"ignored" yaml:"ignored" toml:"ignored" handlebars:"ignored"`
	Failed    int `json:"failed" yaml:"failed" toml:"failed" handlebars:"failed"`
}

// Report is the serializable view of a Result.
type Report struct {
	TraceID    string           `json:"trace_id" yaml:"trace_id" toml:"trace_id" handlebars:"trace_id"`
	DryRun     bool             `json:"dry_run" yaml:"dry_run" toml:"dry_run" handlebars:"dry_run"`
	Success    bool             `json:"success" yaml:"success" toml:"success" handlebars:"success"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty" handlebars:"error"`
	Counts     Counts           `json:"counts" yaml:"counts" toml:"counts" handlebars:"counts"`
	Templates  []string         `json:"templates" yaml:"templates" toml:"templates" handlebars:"templates"`
	Extensions []string         `json:"extensions" yaml:"extensions" toml:"extensions" handlebars:"extensions"`
	Succeeded  []string         `json:"succeeded" yaml:"succeeded" toml:"succeeded" handlebars:"succeeded"`
	Ignored    []inject.Outcome `json:"ignored" yaml:"ignored" toml:"ignored" handlebars:"ignored"`
	Failed     []inject.Outcome `json:"failed" yaml:"failed" toml:"failed" handlebars:"failed"`
}

// FromResult builds the view. Nil slices become empty so every format lists
// each bucket.
func FromResult(res *inject.Result) Report {
	r := Report{
		TraceID:    res.TraceID,
		DryRun:     res.DryRun,
		Success:    res.Success(),
		Templates:  nonNil(res.Templates),
		Extensions: nonNil(res.Extensions),
		Succeeded:  nonNil(res.Succeeded),
		Ignored:    nonNil(res.Ignored),
		Failed:     nonNil(res.Failed),
		Counts: Counts{
			Total:     res.Total,
			Succeeded: len(res.Succeeded),
			Ignored:   len(res.Ignored),
			Failed:    len(res.Failed),
		},
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
	}
	return r
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Formatter writes reports in one format.
type Formatter struct {
	format   Format
	template string
}

// NewFormatter creates a formatter for format.
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// SetTemplate sets the handlebars source used by FormatTemplate.
func (f *Formatter) SetTemplate(tpl string) {
	f.template = tpl
}

// Write renders res to w.
func (f *Formatter) Write(w io.Writer, res *inject.Result) error {
	r := FromResult(res)
	switch f.format {
	case FormatText, "":
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(r)
	case FormatJUnit:
		return writeJUnit(w, r)
	case FormatTemplate:
		if strings.TrimSpace(f.template) == "" {
			return fmt.Errorf("report format %q needs a template", FormatTemplate)
		}
		return writeTemplate(w, f.template, r)
	default:
		return fmt.Errorf("unsupported report format %q", f.format)
	}
}

// Render writes res to w in format. FormatTemplate needs a Formatter with a
// template set.
func Render(w io.Writer, res *inject.Result, format Format) error {
	return NewFormatter(format).Write(w, res)
}
