package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageDim is the size of one page in PDF points
type PageDim struct {
	Width  float64
	Height float64
}

// Info holds the structural facts about a PDF the pipeline needs up front
type Info struct {
	PageCount int
	PageDims  []PageDim
}

// Inspect validates the PDF at path and reports its page count and page
// dimensions. Validation failures surface here, before any API quota is
// spent on a file that cannot be written back.
func Inspect(path string) (*Info, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	info := &Info{PageCount: count}
	for _, d := range dims {
		info.PageDims = append(info.PageDims, PageDim{Width: d.Width, Height: d.Height})
	}
	return info, nil
}
