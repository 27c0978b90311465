package batch

import (
	"unicode"

	"codeberg.org/snonux/ziggurat/internal/document"
)

// DefaultSize is the number of fragments grouped into one translation call.
const DefaultSize = 10

// Batch holds a group of fragments queued for a single translation call.
// Indices maps each text back to the fragment it came from.
type Batch struct {
	Indices []int
	Texts   []string
}

// Split groups the translatable fragments into batches of at most size
// texts. Whitespace-only fragments are skipped entirely: they never reach
// the translation backend and keep their original content.
func Split(fragments []*document.Fragment, size int) []Batch {
	if size <= 0 {
		size = DefaultSize
	}

	var batches []Batch
	current := Batch{}

	for _, frag := range fragments {
		if IsWhitespace(frag.Text) {
			continue
		}

		current.Indices = append(current.Indices, frag.Index)
		current.Texts = append(current.Texts, frag.Text)

		if len(current.Texts) == size {
			batches = append(batches, current)
			current = Batch{}
		}
	}

	if len(current.Texts) > 0 {
		batches = append(batches, current)
	}

	return batches
}

// IsWhitespace reports whether s contains no printable content.
func IsWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
