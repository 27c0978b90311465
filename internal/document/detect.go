package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Format identifies a supported document container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatEPUB
)

// String returns the human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "PDF"
	case FormatEPUB:
		return "EPUB"
	default:
		return "unknown"
	}
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte("PK\x03\x04")
)

// Detect sniffs the format of the file at path from its leading magic bytes.
// Extensions are ignored: a renamed file is still detected correctly.
func Detect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return FormatUnknown, fmt.Errorf("failed to read file header: %w", err)
	}

	switch {
	case bytes.Equal(header, pdfMagic):
		return FormatPDF, nil
	case bytes.Equal(header, zipMagic):
		// EPUB containers are zip archives; the epub reader rejects
		// zips without an EPUB structure later on.
		return FormatEPUB, nil
	default:
		return FormatUnknown, nil
	}
}
