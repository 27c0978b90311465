// Package document defines the format-independent view of a translatable
// document: a flat list of text fragments in reading order, plus magic-byte
// format detection for the supported container formats.
package document
