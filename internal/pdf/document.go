package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/ziggurat/internal"
	"codeberg.org/snonux/ziggurat/internal/document"
)

// Document is a PDF prepared for translation: validated structure, page
// dimensions, and the extracted paragraphs flattened into fragments.
type Document struct {
	path      string
	info      *Info
	pages     []Page
	fragments []*document.Fragment

	// pageOf maps a fragment index to (page index, paragraph index)
	pageOf []paragraphRef
}

type paragraphRef struct {
	page      int
	paragraph int
}

// Read inspects and extracts the PDF at path
func Read(path string) (*Document, error) {
	info, err := Inspect(path)
	if err != nil {
		return nil, err
	}

	pages, err := ExtractPages(path)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		path:  path,
		info:  info,
		pages: pages,
	}
	for pi, page := range pages {
		for qi, par := range page.Paragraphs {
			doc.fragments = append(doc.fragments, &document.Fragment{
				Index: len(doc.fragments),
				Text:  par,
			})
			doc.pageOf = append(doc.pageOf, paragraphRef{page: pi, paragraph: qi})
		}
	}
	return doc, nil
}

// Info returns the structural facts gathered during inspection
func (d *Document) Info() *Info {
	return d.info
}

// Format reports the container format
func (d *Document) Format() document.Format {
	return document.FormatPDF
}

// Fragments returns the extracted paragraphs in page order
func (d *Document) Fragments() []*document.Fragment {
	return d.fragments
}

// Apply substitutes translated paragraphs back into their pages
func (d *Document) Apply(translated []string) error {
	if len(translated) != len(d.fragments) {
		return fmt.Errorf("expected %d translations, got %d", len(d.fragments), len(translated))
	}

	for i, text := range translated {
		if text == "" {
			continue
		}
		ref := d.pageOf[i]
		d.pages[ref.page].Paragraphs[ref.paragraph] = text
	}
	return nil
}

// WriteTo regenerates the document at path with the translated pages
func (d *Document) WriteTo(path string) error {
	base := filepath.Base(d.path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	gen := NewGenerator(title, "ziggurat "+internal.Version)

	return gen.Generate(d.pages, d.info.PageDims, path)
}
