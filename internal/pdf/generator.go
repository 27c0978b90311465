package pdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Layout holds the text flow constants for regenerated pages, in PDF points.
type Layout struct {
	MarginX          float64
	MaxWidth         float64
	LineHeight       float64
	ParagraphSpacing float64
	MinY             float64
	MaxY             float64
	FontSize         float64
}

// DefaultLayout returns the standard text band used for regenerated pages
func DefaultLayout() Layout {
	return Layout{
		MarginX:          50,
		MaxWidth:         500,
		LineHeight:       14,
		ParagraphSpacing: 20,
		MinY:             50,
		MaxY:             750,
		FontSize:         11,
	}
}

// Generator renders translated pages into a new PDF. Each input page starts
// a fresh output page at the original page size, so the output page count
// matches the input as long as the translated text fits the page band.
type Generator struct {
	layout  Layout
	title   string
	creator string
}

// NewGenerator creates a generator with the default layout
func NewGenerator(title, creator string) *Generator {
	return &Generator{
		layout:  DefaultLayout(),
		title:   title,
		creator: creator,
	}
}

// SetLayout overrides the default text flow constants
func (g *Generator) SetLayout(layout Layout) {
	g.layout = layout
}

// Generate writes the pages to outputPath. dims supplies the original page
// sizes; when a page has no dimension entry the previous page size carries
// over, and A4 is the last resort.
func (g *Generator) Generate(pages []Page, dims []PageDim, outputPath string) error {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: 595.28, Ht: 841.89}, // A4 fallback
	})
	doc.SetTitle(g.title, true)
	doc.SetCreator(g.creator, true)
	doc.SetFont("Helvetica", "", g.layout.FontSize)
	doc.SetAutoPageBreak(true, g.layout.MinY)
	doc.SetMargins(g.layout.MarginX, g.layout.MinY, g.layout.MarginX)

	// Core fonts are cp1252; the translator maps what it can and keeps
	// the output readable for Latin-script target languages.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	size := gofpdf.SizeType{Wd: 595.28, Ht: 841.89}
	for i, page := range pages {
		if i < len(dims) {
			size = gofpdf.SizeType{Wd: dims[i].Width, Ht: dims[i].Height}
		}
		doc.AddPageFormat("P", size)

		y := g.layout.MinY
		for _, par := range page.Paragraphs {
			doc.SetXY(g.layout.MarginX, y)
			doc.MultiCell(g.layout.MaxWidth, g.layout.LineHeight, tr(par), "", "L", false)
			y = doc.GetY() + g.layout.ParagraphSpacing
			if y > g.layout.MaxY {
				y = g.layout.MaxY
			}
		}
	}

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
