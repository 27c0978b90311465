package document

// Fragment is a single text-bearing node of a document in reading order.
// Text holds the trimmed content that goes to the translation backend.
// Leading and Trailing keep the surrounding whitespace so the translated
// text can be written back without disturbing the document layout.
type Fragment struct {
	Index    int
	Text     string
	Leading  string
	Trailing string
}

// Document is the format-independent contract the processor works against.
// Implementations keep enough structure to write translated text back into
// the position it came from.
type Document interface {
	// Format reports the container format of the document.
	Format() Format

	// Fragments returns the translatable text fragments in reading order.
	Fragments() []*Fragment

	// Apply substitutes translated text back into the document structure.
	// The slice must be index-aligned with Fragments; an empty string
	// leaves the original fragment untouched.
	Apply(translated []string) error

	// WriteTo serializes the document to path in its original format.
	WriteTo(path string) error
}
