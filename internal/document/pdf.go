package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// pdfText shells out to pdftotext (poppler-utils) with a timeout. The
// binary writes extracted text to stdout with the "-" argument.
func (r *Reader) pdfText(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.pdfTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdftotext", "-raw", path, "-")

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("document: pdf extraction timed out: %w", ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.New("document: pdftotext binary not found; install poppler-utils")
		}
		return "", fmt.Errorf("document: pdftotext: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("document: pdf produced no text; file may be image-based or protected")
	}
	return text, nil
}
