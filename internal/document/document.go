// Package document extracts plain text from uploaded news documents.
// Supported formats: plain text, PDF (via the external pdftotext utility),
// DOCX, and HTML.
package document

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Unreadable replaces the content of any file that cannot be read. The
// caller always receives text, never an error.
const Unreadable = "Error: Could not read content from the file. It might be corrupted or in an unsupported format."

// Separator joins the contents of multiple uploaded files.
const Separator = "\n\n--- End of File ---\n\n"

const defaultPDFTimeout = 30 * time.Second

var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
	".html": true,
}

// Allowed reports whether filename carries a supported extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// AllowedExtensions lists the supported extensions without the leading
// dot, sorted, for use in error messages.
func AllowedExtensions() []string {
	names := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		names = append(names, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(names)
	return names
}

// Reader extracts text content from document files.
type Reader struct {
	pdfTimeout time.Duration
}

// NewReader creates a Reader with the default PDF extraction timeout.
func NewReader() *Reader {
	return &Reader{pdfTimeout: defaultPDFTimeout}
}

// Extract returns the text content of the file at path, dispatching on the
// extension. Files without a recognized extension are read as plain text.
// Unreadable input yields the Unreadable sentinel, never an error.
func (r *Reader) Extract(ctx context.Context, path string) string {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = r.pdfText(ctx, path)
	case ".docx":
		text, err = docxText(path)
	case ".html", ".htm":
		text, err = htmlText(path)
	default:
		text, err = plainText(path)
	}
	if err != nil {
		slog.Warn("document read failed", "path", path, "error", err)
		return Unreadable
	}
	return text
}

// Join concatenates document contents with the file separator.
func Join(contents []string) string {
	return strings.Join(contents, Separator)
}

func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
