package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/abadojack/whatlanggo"

	"codeberg.org/snonux/ziggurat/internal/archive"
	"codeberg.org/snonux/ziggurat/internal/batch"
	"codeberg.org/snonux/ziggurat/internal/cli"
	"codeberg.org/snonux/ziggurat/internal/document"
	"codeberg.org/snonux/ziggurat/internal/epub"
	"codeberg.org/snonux/ziggurat/internal/pdf"
	"codeberg.org/snonux/ziggurat/internal/translate"
)

// Processor drives one document translation run
type Processor struct {
	flags    *cli.Flags
	provider translate.Provider
	cache    *translate.Cache
	memory   *translate.Memory
}

// New creates a processor from resolved flags. The API key is resolved with
// the documented source precedence; a missing key is a terminal error here,
// before any file is touched.
func New(flags *cli.Flags) (*Processor, error) {
	apiKey, source, err := cli.ResolveAPIKey(flags.APIKey)
	if err != nil {
		return nil, err
	}
	if flags.Verbose {
		fmt.Printf("Using API key from %s\n", source)
	}

	provider, err := translate.NewProvider(&translate.Config{
		Provider: flags.Provider,
		APIKey:   apiKey,
		Model:    flags.Model,
	})
	if err != nil {
		return nil, err
	}

	p := &Processor{
		flags:    flags,
		provider: translate.NewBreakerProvider(provider),
		cache:    translate.NewCache(),
	}

	if !flags.NoMemory {
		memory, err := translate.OpenMemory(translate.DefaultMemoryPath())
		if err != nil {
			// The memory is an optimization; a broken cache dir
			// should not block a translation run.
			fmt.Fprintf(os.Stderr, "Warning: translation memory disabled: %v\n", err)
		} else {
			p.memory = memory
		}
	}

	return p, nil
}

// NewWithProvider creates a processor around an existing provider, skipping
// API key resolution. Used by tests and by callers that already hold a
// configured provider.
func NewWithProvider(flags *cli.Flags, provider translate.Provider) *Processor {
	return &Processor{
		flags:    flags,
		provider: provider,
		cache:    translate.NewCache(),
	}
}

// SetMemory attaches a persistent translation memory
func (p *Processor) SetMemory(m *translate.Memory) {
	p.memory = m
}

// Close releases the translation memory
func (p *Processor) Close() {
	if p.memory != nil {
		p.memory.Close()
	}
}

// Run translates the input document and writes the output document
func (p *Processor) Run(ctx context.Context) error {
	if _, err := os.Stat(p.flags.Input); err != nil {
		return fmt.Errorf("cannot read input file %s: %w", p.flags.Input, err)
	}

	format, err := document.Detect(p.flags.Input)
	if err != nil {
		return err
	}

	var doc document.Document
	switch format {
	case document.FormatEPUB:
		doc, err = epub.Read(p.flags.Input)
	case document.FormatPDF:
		doc, err = pdf.Read(p.flags.Input)
	default:
		return fmt.Errorf("unsupported file format: %s is neither PDF nor EPUB", p.flags.Input)
	}
	if err != nil {
		return err
	}

	fragments := doc.Fragments()
	fmt.Printf("Translating %s (%s, %d text fragments) to %s...\n",
		p.flags.Input, format, len(fragments), p.flags.Target)

	translated, err := p.translateFragments(ctx, fragments)
	if err != nil {
		return err
	}

	if err := doc.Apply(translated); err != nil {
		return err
	}

	if backupPath, err := archive.BackupExisting(p.flags.Output); err != nil {
		return err
	} else if backupPath != "" {
		fmt.Printf("Existing output backed up to %s\n", backupPath)
	}

	if err := doc.WriteTo(p.flags.Output); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Done! Translated document saved to: %s\n", p.flags.Output)
	return nil
}

// translateFragments returns a slice index-aligned with fragments. Entries
// that were skipped (whitespace, already in the target language) stay empty
// and keep their original text on Apply.
func (p *Processor) translateFragments(ctx context.Context, fragments []*document.Fragment) ([]string, error) {
	translated := make([]string, len(fragments))

	batches := batch.Split(fragments, p.flags.BatchSize)
	for bi, b := range batches {
		if p.flags.Verbose {
			fmt.Printf("  Batch %d/%d (%d fragments)\n", bi+1, len(batches), len(b.Texts))
		}

		// Serve what we can locally before going to the backend
		var missingTexts []string
		var missingIndices []int
		for j, text := range b.Texts {
			fragIndex := b.Indices[j]

			if p.alreadyInTarget(text) {
				if p.flags.Verbose {
					fmt.Printf("    Skipping fragment %d: already in %s\n", fragIndex, p.flags.Target)
				}
				continue
			}

			if hit, ok := p.lookup(text); ok {
				translated[fragIndex] = hit
				continue
			}

			missingTexts = append(missingTexts, text)
			missingIndices = append(missingIndices, fragIndex)
		}

		if len(missingTexts) == 0 {
			continue
		}

		results, err := p.provider.Translate(ctx, missingTexts, p.flags.Target)
		if err != nil {
			return nil, fmt.Errorf("translation failed on batch %d/%d: %w", bi+1, len(batches), err)
		}
		if len(results) != len(missingTexts) {
			return nil, fmt.Errorf("provider returned %d translations for %d fragments",
				len(results), len(missingTexts))
		}

		for j, result := range results {
			translated[missingIndices[j]] = result
			p.store(missingTexts[j], result)
		}
	}

	return translated, nil
}

// lookup checks the run cache first, then the persistent memory
func (p *Processor) lookup(text string) (string, bool) {
	if hit, ok := p.cache.Get(text, p.flags.Target); ok {
		return hit, true
	}
	if p.memory != nil {
		if hit, ok := p.memory.Get(text, p.flags.Target, p.flags.Provider); ok {
			p.cache.Add(text, p.flags.Target, hit)
			return hit, true
		}
	}
	return "", false
}

// store records a fresh translation in the cache and the memory
func (p *Processor) store(text, result string) {
	p.cache.Add(text, p.flags.Target, result)
	if p.memory != nil {
		if err := p.memory.Put(text, p.flags.Target, p.flags.Provider, result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to store translation: %v\n", err)
		}
	}
}

// alreadyInTarget reports whether a fragment is reliably detected as being
// in the target language already. Detection on short fragments is noise, so
// anything under 40 characters always goes to the backend.
func (p *Processor) alreadyInTarget(text string) bool {
	if len(text) < 40 {
		return false
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return false
	}
	return info.Lang.Iso6391() == p.flags.Target
}
