package header

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fulmenhq/cwt/pkg/tags"
	"github.com/fulmenhq/cwt/pkg/textfile"
)

// Template is a header-template file on disk. It never writes.
type Template struct {
	path string
	tags tags.Table
}

// Open binds a template path to the tag table used by Content.
func Open(path string, table tags.Table) *Template {
	return &Template{path: path, tags: table}
}

// Path returns the template's file path.
func (t *Template) Path() string { return t.path }

// Marker reads the first line only and parses it.
func (t *Template) Marker() (*Marker, error) {
	line, err := t.firstLine()
	if err != nil {
		return nil, err
	}
	return ParseMarker(line)
}

// Extensions returns the extensions bound by the marker. A missing marker is
// reported as ErrNoMarker.
func (t *Template) Extensions() ([]string, error) {
	m, err := t.Marker()
	if err != nil {
		return nil, err
	}
	return m.Extensions, nil
}

// Content returns the header text: the file without its marker line, tags
// substituted, surrounding blank lines dropped and lines joined with
// tags.LineSeparator. The result carries no trailing line separator.
func (t *Template) Content() (string, error) {
	data, err := os.ReadFile(t.path) // #nosec G304 -- template paths come from the collector
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", t.path, err)
	}
	text, err := textfile.Decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode template %s: %w", t.path, err)
	}

	lines := textfile.Lines(text)
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return t.tags.Replace(strings.Join(lines, tags.LineSeparator)), nil
}

// ContentType sniffs the template's media type.
func (t *Template) ContentType() (string, error) {
	return DetectContentType(t.path)
}

func (t *Template) firstLine() (string, error) {
	f, err := os.Open(t.path) // #nosec G304 -- template paths come from the collector
	if err != nil {
		return "", fmt.Errorf("failed to open template %s: %w", t.path, err)
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReader(textfile.NewReader(f)).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read template %s: %w", t.path, err)
	}
	return textfile.FirstLine(line), nil
}
