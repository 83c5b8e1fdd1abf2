// Package pdftext pulls the text layer out of statement PDFs.
//
// No OCR is attempted: an image-only PDF yields little or no text and is
// reported as scanned by the importer's length threshold.
package pdftext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoPages is returned for a PDF without any page.
var ErrNoPages = errors.New("PDF has no pages")

// ExtractText returns the text of every page of the PDF at path, pages
// separated by a blank line.
func ExtractText(path string) (string, error) {
	pages, err := ExtractPages(path)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n\n"), nil
}

// ExtractPages returns one string per page. Rows are read top to bottom with
// their words joined by single spaces; a page whose rows cannot be read falls
// back to the library's plain-text rendering.
func ExtractPages(path string) (pages []string, err error) {
	// The PDF library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("reading PDF %s: library crashed: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, ErrNoPages
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page))
	}
	return pages, nil
}

func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		words := make([][]string, 0, len(rows))
		for _, row := range rows {
			var parts []string
			for _, w := range row.Content {
				parts = append(parts, w.S)
			}
			words = append(words, parts)
		}
		return joinRows(words)
	}

	plain, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(plain)
}

// joinRows renders rows of words as lines, dropping blank rows.
func joinRows(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := strings.TrimSpace(strings.Join(row, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
