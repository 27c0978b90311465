package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Chapter is one spine document of a test EPUB
type Chapter struct {
	Name string // zip path, e.g. "OEBPS/ch1.xhtml"
	HTML string
}

// BuildEPUB assembles a minimal but structurally valid EPUB: mimetype,
// container.xml, an OPF with manifest and spine, the given chapters, and a
// fake binary resource so pass-through copying can be asserted on.
func BuildEPUB(t *testing.T, chapters []Chapter) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	// mimetype must be first and uncompressed
	fw, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("Failed to create mimetype entry: %v", err)
	}
	if _, err := fw.Write([]byte("application/epub+zip")); err != nil {
		t.Fatalf("Failed to write mimetype entry: %v", err)
	}

	writeEntry(t, w, "META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`)

	manifest := ""
	spine := ""
	for i, ch := range chapters {
		rel, err := filepath.Rel("OEBPS", ch.Name)
		if err != nil {
			t.Fatalf("Chapter %s not under OEBPS: %v", ch.Name, err)
		}
		manifest += fmt.Sprintf(
			`    <item id="ch%d" href="%s" media-type="application/xhtml+xml"/>`+"\n", i+1, rel)
		spine += fmt.Sprintf(`    <itemref idref="ch%d"/>`+"\n", i+1)
	}
	manifest += `    <item id="img1" href="images/cover.png" media-type="image/png"/>` + "\n"

	writeEntry(t, w, "OEBPS/content.opf", fmt.Sprintf(`<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="id">test-book</dc:identifier>
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
%s  </manifest>
  <spine>
%s  </spine>
</package>`, manifest, spine))

	for _, ch := range chapters {
		writeEntry(t, w, ch.Name, ch.HTML)
	}

	writeEntry(t, w, "OEBPS/images/cover.png", FakePNGData())

	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize test EPUB: %v", err)
	}
	return buf.Bytes()
}

// WriteEPUB writes a test EPUB to dir and returns its path
func WriteEPUB(t *testing.T, dir string, chapters []Chapter) string {
	t.Helper()

	path := filepath.Join(dir, "test.epub")
	if err := os.WriteFile(path, BuildEPUB(t, chapters), 0644); err != nil {
		t.Fatalf("Failed to write test EPUB: %v", err)
	}
	return path
}

// FakePNGData returns bytes with a PNG signature, enough for pass-through
// assertions without a real image
func FakePNGData() string {
	return "\x89PNG\r\n\x1a\n-not-a-real-image-"
}

// ZipEntryNames returns the entry names of a zip file in archive order
func ZipEntryNames(t *testing.T, path string) []string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open zip %s: %v", path, err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

// ReadZipEntry returns the contents of a single zip entry
func ReadZipEntry(t *testing.T, path, name string) []byte {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open zip %s: %v", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open entry %s: %v", name, err)
		}
		defer rc.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("Failed to read entry %s: %v", name, err)
		}
		return buf.Bytes()
	}

	t.Fatalf("Entry %s not found in %s", name, path)
	return nil
}

func writeEntry(t *testing.T, w *zip.Writer, name, content string) {
	t.Helper()

	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("Failed to create entry %s: %v", name, err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write entry %s: %v", name, err)
	}
}
