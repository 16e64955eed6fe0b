/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package textfile holds the byte-level text heuristics shared by template
// sniffing and template decoding: BOM detection, text-vs-binary checks and
// line-ending normalization.
package textfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// GetBOMInfo returns information about detected BOM
func GetBOMInfo(input []byte) (encoding string, bomSize int, found bool) {
	switch {
	case len(input) >= 4 && bytes.HasPrefix(input, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return "UTF-32BE", 4, true
	case len(input) >= 4 && bytes.HasPrefix(input, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return "UTF-32LE", 4, true
	case len(input) >= 3 && bytes.HasPrefix(input, []byte{0xEF, 0xBB, 0xBF}):
		return "UTF-8", 3, true
	case len(input) >= 2 && bytes.HasPrefix(input, []byte{0xFE, 0xFF}):
		return "UTF-16BE", 2, true
	case len(input) >= 2 && bytes.HasPrefix(input, []byte{0xFF, 0xFE}):
		return "UTF-16LE", 2, true
	}
	return "", 0, false
}

// HasBOM checks if the content starts with a known BOM
func HasBOM(content []byte) bool {
	_, _, found := GetBOMInfo(content)
	return found
}

// IsProcessableText reports whether content looks like text we can decode.
// Files with a UTF-8/16/32 BOM are accepted outright.
func IsProcessableText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	if HasBOM(content) {
		return true
	}

	// More than 10% NUL bytes is binary.
	if bytes.Count(content, []byte{0}) > len(content)/10 {
		return false
	}
	return utf8.Valid(trimPartialRune(content))
}

// trimPartialRune drops a UTF-8 sequence cut off at the end of a sniff buffer.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}

// NewReader decodes r to UTF-8 as it is read. A UTF-8 or UTF-16 BOM selects
// the encoding and is dropped.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// Decode converts template bytes to UTF-8. A UTF-8 or UTF-16 BOM selects the
// encoding and is stripped; without one the input is read as UTF-8.
func Decode(input []byte) (string, error) {
	if enc, _, found := GetBOMInfo(input); found && strings.HasPrefix(enc, "UTF-32") {
		return "", fmt.Errorf("unsupported text encoding %s", enc)
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, input)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}

// Lines splits s on LF, CRLF or lone CR. A trailing line ending does not
// produce an extra empty element.
func Lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// FirstLine returns the first line of s without its line ending.
func FirstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// NormalizeLineEndings converts all line endings to the specified style
func NormalizeLineEndings(input []byte, targetEnding string) (out []byte, changed bool) {
	if len(input) == 0 {
		return input, false
	}
	if bytes.Contains(input, []byte{0}) {
		return input, false
	}

	content := string(input)
	original := content
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	if targetEnding == "\r\n" {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	return []byte(content), content != original
}
