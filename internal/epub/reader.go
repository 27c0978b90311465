package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html"

	"codeberg.org/snonux/ziggurat/internal/document"
)

const containerPath = "META-INF/container.xml"

// container mirrors META-INF/container.xml
type container struct {
	XMLName   xml.Name   `xml:"container"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// opfPackage mirrors the parts of the OPF package document we need
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type opfSpine struct {
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// entry is a raw zip entry of the container, kept in archive order
type entry struct {
	name string
	data []byte
}

// chapter is a spine document whose text nodes get translated
type chapter struct {
	entryIndex int
	root       *html.Node
	textNodes  []*html.Node
}

// Document is an EPUB held fully in memory: every zip entry byte-for-byte,
// plus parsed spine documents with their translatable text nodes.
type Document struct {
	entries   []entry
	chapters  []*chapter
	fragments []*document.Fragment
}

// Read opens the EPUB at path, parses the container and OPF, and collects
// the text fragments of every XHTML spine item in reading order.
func Read(filePath string) (*Document, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB file: %w", err)
	}
	defer reader.Close()

	doc := &Document{}
	entryIndex := make(map[string]int)

	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", f.Name, err)
		}
		entryIndex[f.Name] = len(doc.entries)
		doc.entries = append(doc.entries, entry{name: f.Name, data: data})
	}

	opfPath, err := doc.locateOPF(entryIndex)
	if err != nil {
		return nil, err
	}

	spinePaths, err := doc.resolveSpine(opfPath, entryIndex)
	if err != nil {
		return nil, err
	}

	for _, p := range spinePaths {
		idx, ok := entryIndex[p]
		if !ok {
			// Manifest may reference files missing from sloppy
			// containers; leave them out rather than failing.
			continue
		}
		if err := doc.parseChapter(idx); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
	}

	return doc, nil
}

// locateOPF finds and parses container.xml, returning the OPF path
func (d *Document) locateOPF(entryIndex map[string]int) (string, error) {
	idx, ok := entryIndex[containerPath]
	if !ok {
		return "", fmt.Errorf("not a valid EPUB: %s not found", containerPath)
	}

	var c container
	if err := xml.Unmarshal(d.entries[idx].data, &c); err != nil {
		return "", fmt.Errorf("failed to parse container.xml: %w", err)
	}
	if len(c.RootFiles) == 0 {
		return "", fmt.Errorf("not a valid EPUB: no rootfile in container.xml")
	}
	return c.RootFiles[0].FullPath, nil
}

// resolveSpine parses the OPF and returns the zip paths of the XHTML spine
// items in spine order.
func (d *Document) resolveSpine(opfPath string, entryIndex map[string]int) ([]string, error) {
	idx, ok := entryIndex[opfPath]
	if !ok {
		return nil, fmt.Errorf("OPF file %s not found in container", opfPath)
	}

	var pkg opfPackage
	if err := xml.Unmarshal(d.entries[idx].data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse OPF: %w", err)
	}

	itemsByID := make(map[string]opfItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		itemsByID[item.ID] = item
	}

	opfDir := path.Dir(opfPath)
	var spinePaths []string
	for _, ref := range pkg.Spine.ItemRefs {
		item, ok := itemsByID[ref.IDRef]
		if !ok {
			continue
		}
		if !isXHTML(item.MediaType) {
			continue
		}
		href := item.Href
		if opfDir != "." {
			href = path.Join(opfDir, href)
		}
		spinePaths = append(spinePaths, path.Clean(href))
	}
	return spinePaths, nil
}

func isXHTML(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "application/xhtml+xml", "text/html":
		return true
	default:
		return false
	}
}

// parseChapter parses a spine entry and registers its text fragments
func (d *Document) parseChapter(entryIndex int) error {
	root, err := html.Parse(bytes.NewReader(d.entries[entryIndex].data))
	if err != nil {
		return err
	}

	ch := &chapter{
		entryIndex: entryIndex,
		root:       root,
		textNodes:  collectTextNodes(root),
	}
	d.chapters = append(d.chapters, ch)

	for _, node := range ch.textNodes {
		leading, text, trailing := splitWhitespace(node.Data)
		d.fragments = append(d.fragments, &document.Fragment{
			Index:    len(d.fragments),
			Text:     text,
			Leading:  leading,
			Trailing: trailing,
		})
	}
	return nil
}

// Format reports the container format
func (d *Document) Format() document.Format {
	return document.FormatEPUB
}

// Fragments returns the translatable text fragments in spine order
func (d *Document) Fragments() []*document.Fragment {
	return d.fragments
}

// Apply substitutes translated text back into the chapter trees. The slice
// must be index-aligned with Fragments; empty strings leave the original
// text in place.
func (d *Document) Apply(translated []string) error {
	if len(translated) != len(d.fragments) {
		return fmt.Errorf("expected %d translations, got %d", len(d.fragments), len(translated))
	}

	i := 0
	for _, ch := range d.chapters {
		for _, node := range ch.textNodes {
			frag := d.fragments[i]
			if translated[i] != "" {
				node.Data = frag.Leading + translated[i] + frag.Trailing
			}
			i++
		}
	}
	return nil
}
