package pdf

import (
	"fmt"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
)

// Page holds the extracted paragraphs of a single input page
type Page struct {
	Number     int
	Paragraphs []string
}

// ExtractPages pulls the plain text of every page and splits it into
// paragraph fragments. Pages without extractable text (scans, pure-image
// pages) come back with no paragraphs and pass through untranslated.
func ExtractPages(path string) ([]Page, error) {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]Page, 0, total)

	for i := 1; i <= total; i++ {
		page := Page{Number: i}

		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, page)
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single broken content stream should not sink the
			// whole document; the page passes through empty.
			fmt.Printf("  Warning: no text extracted from page %d: %v\n", i, err)
			pages = append(pages, page)
			continue
		}

		page.Paragraphs = splitParagraphs(text)
		pages = append(pages, page)
	}

	return pages, nil
}

// splitParagraphs splits extracted page text on blank lines. Single line
// breaks inside a paragraph are layout artifacts and collapse to spaces so
// the translation backend sees whole sentences.
func splitParagraphs(text string) []string {
	var paragraphs []string

	for _, block := range strings.Split(text, "\n\n") {
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(line)
		}
		joined := strings.TrimSpace(strings.Join(lines, " "))
		if joined != "" {
			paragraphs = append(paragraphs, joined)
		}
	}

	return paragraphs
}
