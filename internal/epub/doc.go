// Package epub reads and rewrites EPUB containers. The container, OPF and
// spine parsing stays deliberately thin: the package walks the structures an
// EPUB zip already carries, substitutes translated text into the XHTML text
// nodes, and copies everything else through byte-for-byte.
package epub
