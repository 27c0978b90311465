package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"

	"golang.org/x/net/html"
)

const mimetypeEntry = "mimetype"

// WriteTo serializes the document to path. Non-content entries (images, CSS,
// fonts, OPF, NCX, metadata) are copied byte-for-byte; translated chapters
// replace the original spine entries. The mimetype entry comes first and is
// stored uncompressed, as the EPUB OCF requires.
func (d *Document) WriteTo(path string) error {
	rendered := make(map[int][]byte, len(d.chapters))
	for _, ch := range d.chapters {
		var buf bytes.Buffer
		if err := html.Render(&buf, ch.root); err != nil {
			return fmt.Errorf("failed to render %s: %w", d.entries[ch.entryIndex].name, err)
		}
		rendered[ch.entryIndex] = buf.Bytes()
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)

	// mimetype first, uncompressed
	for _, e := range d.entries {
		if e.name != mimetypeEntry {
			continue
		}
		fw, err := w.CreateHeader(&zip.FileHeader{
			Name:   mimetypeEntry,
			Method: zip.Store,
		})
		if err != nil {
			return fmt.Errorf("failed to write mimetype entry: %w", err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("failed to write mimetype entry: %w", err)
		}
		break
	}

	for i, e := range d.entries {
		if e.name == mimetypeEntry {
			continue
		}
		data := e.data
		if r, ok := rendered[i]; ok {
			data = r
		}
		fw, err := w.Create(e.name)
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", e.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", e.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize EPUB: %w", err)
	}
	return nil
}
