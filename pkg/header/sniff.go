package header

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/cwt/pkg/textfile"
)

const (
	// PlainText is the media type a template must sniff as.
	PlainText = "text/plain"

	sniffLen    = 512
	octetStream = "application/octet-stream"
)

// DetectContentType resolves path's media type through three strategies,
// each tried only when the previous one gave nothing usable: the extension
// table, http.DetectContentType over the first 512 bytes, then a text
// heuristic over the same bytes.
func DetectContentType(path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); usable(ct) {
		return ct, nil
	}

	head, err := readHead(path)
	if err != nil {
		return "", err
	}
	if ct := http.DetectContentType(head); usable(ct) {
		return ct, nil
	}
	if textfile.IsProcessableText(head) {
		return PlainText, nil
	}
	return octetStream, nil
}

// IsPlainText reports whether contentType names text/plain, parameters aside.
func IsPlainText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	return strings.EqualFold(mediaType, PlainText)
}

func usable(ct string) bool {
	return ct != "" && !strings.HasPrefix(ct, octetStream)
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- sniffed paths come from the collector
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}
