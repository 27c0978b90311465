// Package pdf handles the PDF side of the pipeline: pdfcpu validates the
// input and reports page geometry, ledongthuc/pdf extracts per-page text,
// and gofpdf regenerates the translated pages one output page per input
// page. Layout parsing itself stays in the libraries.
package pdf
