// Package header parses header-template files and decides which files in a
// template tree are usable templates.
//
// A template's first line is its marker:
//
//	@@CWT|java,cpp,h@@
//
// naming the file extensions the rest of the file applies to.
package header

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MarkerTag is the only marker literal this tool understands.
const MarkerTag = "CWT"

var (
	// ErrNoMarker means the first line is not a marker; the file is not a template.
	ErrNoMarker = errors.New("no header marker")
	// ErrUnsupportedMarker means the line is marker-shaped but names another tag.
	ErrUnsupportedMarker = errors.New("unsupported header marker")
)

var markerPattern = regexp.MustCompile(`(?i)^@@([^|@]+)\|(.*?)@@`)

// Marker is the parsed first line of a template.
type Marker struct {
	Tag        string
	Extensions []string
}

// ParseMarker parses a marker line. Extensions come back trimmed, lower-cased,
// without a leading dot and de-duplicated in first-seen order.
func ParseMarker(line string) (*Marker, error) {
	m := markerPattern.FindStringSubmatch(strings.TrimPrefix(line, "\ufeff"))
	if m == nil {
		return nil, ErrNoMarker
	}
	tag := strings.TrimSpace(m[1])
	if !strings.EqualFold(tag, MarkerTag) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMarker, tag)
	}
	return &Marker{Tag: strings.ToUpper(tag), Extensions: splitExtensions(m[2])}, nil
}

// String renders the marker in canonical form.
func (m *Marker) String() string {
	return "@@" + m.Tag + "|" + strings.Join(m.Extensions, ",") + "@@"
}

func splitExtensions(raw string) []string {
	seen := make(map[string]struct{})
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if ext == "" {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	return exts
}
