// Package archive backs up existing output files before they are
// overwritten by a translation run.
package archive
