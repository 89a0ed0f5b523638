package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when no page of the upload yields extractable text:
// malformed files, encrypted files, and pure image scans all land here.
// Callers must reject the upload rather than store an empty document.
var ErrNoText = errors.New("no extractable text in pdf")

// PDF extracts plain text from a PDF byte stream using github.com/ledongthuc/pdf.
// Page texts are concatenated in page order separated by a single newline;
// pages without extractable text are skipped. The result is trimmed of
// leading and trailing whitespace. Purely functional, no side effects.
func PDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoText
	}
	text, err := walkPages(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, err)
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// walkPages tolerates structurally broken files: the parser panics on some
// malformed inputs, which count as unextractable rather than crashing.
func walkPages(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf parse: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if content := pageText(page); content != "" {
			pages = append(pages, content)
		}
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}
