package epub

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// skippedElements are subtrees whose text is code or metadata, never prose.
var skippedElements = map[string]bool{
	"script": true,
	"style":  true,
}

// collectTextNodes walks the tree depth-first and returns the text nodes
// that carry printable content, in document order.
func collectTextNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return nodes
}

// splitWhitespace splits s into its leading whitespace, trimmed content and
// trailing whitespace. Inter-word formatting whitespace stays part of the
// content; only the edges matter for reassembly.
func splitWhitespace(s string) (leading, text, trailing string) {
	start := 0
	for start < len(s) {
		r := rune(s[start])
		if r >= 0x80 || !unicode.IsSpace(r) {
			break
		}
		start++
	}

	end := len(s)
	for end > start {
		r := rune(s[end-1])
		if r >= 0x80 || !unicode.IsSpace(r) {
			break
		}
		end--
	}

	return s[:start], s[start:end], s[end:]
}
