package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses runs of whitespace to single spaces and trims
// the result.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// ReadDocument loads a contract document as normalized plain text. Binary
// document formats are out of scope here: converting PDF/DOCX to text is the
// job of external tooling, and such files are rejected with guidance.
func ReadDocument(path string, maxBytes int64) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".doc":
		return "", fmt.Errorf("%s is a binary document: convert it to plain text first (e.g. pdftotext, pandoc)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	text := NormalizeWhitespace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from %s", path)
	}

	return text, nil
}
