// Package processor orchestrates a translation run: format detection,
// document reading, fragment batching, translation with cache and memory
// lookups, substitution, and serialization of the output document.
package processor
