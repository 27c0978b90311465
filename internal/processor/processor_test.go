package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/ziggurat/internal/cli"
	"codeberg.org/snonux/ziggurat/internal/pdf"
	"codeberg.org/snonux/ziggurat/internal/testutil"
	"codeberg.org/snonux/ziggurat/internal/translate"
)

func testFlags(input, output string) *cli.Flags {
	flags := cli.NewFlags()
	flags.Input = input
	flags.Output = output
	flags.Target = "de"
	flags.NoMemory = true
	return flags
}

func TestRun_TranslatesEPUB(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteEPUB(t, dir, []testutil.Chapter{
		{Name: "OEBPS/ch1.xhtml", HTML: `<html><body><h1>Chapter One</h1><p>Some prose here.</p></body></html>`},
	})
	output := filepath.Join(dir, "out.epub")

	mock := &testutil.MockProvider{}
	p := NewWithProvider(testFlags(input, output), mock)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ch1 := string(testutil.ReadZipEntry(t, output, "OEBPS/ch1.xhtml"))
	if !strings.Contains(ch1, "[de] Chapter One") || !strings.Contains(ch1, "[de] Some prose here.") {
		t.Errorf("Expected translated text in output, got:\n%s", ch1)
	}

	if names := testutil.ZipEntryNames(t, output); names[0] != "mimetype" {
		t.Errorf("Expected mimetype first in output, got %v", names)
	}
}

func TestRun_TranslatesPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.pdf")

	gen := pdf.NewGenerator("in", "test")
	pages := []pdf.Page{
		{Number: 1, Paragraphs: []string{"A single page with one paragraph of text."}},
	}
	dims := []pdf.PageDim{{Width: 595.28, Height: 841.89}}
	if err := gen.Generate(pages, dims, input); err != nil {
		t.Fatalf("Failed to generate input PDF: %v", err)
	}

	output := filepath.Join(dir, "out.pdf")
	p := NewWithProvider(testFlags(input, output), &testutil.MockProvider{})
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Same page count, translated text substituted
	info, err := pdf.Inspect(output)
	if err != nil {
		t.Fatalf("Inspect rejected the output PDF: %v", err)
	}
	if info.PageCount != 1 {
		t.Errorf("Expected 1 output page, got %d", info.PageCount)
	}

	extracted, err := pdf.ExtractPages(output)
	if err != nil {
		t.Fatalf("ExtractPages failed: %v", err)
	}
	text := strings.Join(extracted[0].Paragraphs, " ")
	if !strings.Contains(text, "[de]") {
		t.Errorf("Expected translated text in output, got %q", text)
	}
}

func TestRun_UsesCacheForRepeatedFragments(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteEPUB(t, dir, []testutil.Chapter{
		{Name: "OEBPS/ch1.xhtml", HTML: `<html><body><p>Repeated header</p><p>Unique body</p></body></html>`},
		{Name: "OEBPS/ch2.xhtml", HTML: `<html><body><p>Repeated header</p></body></html>`},
	})
	output := filepath.Join(dir, "out.epub")

	mock := &testutil.MockProvider{}
	flags := testFlags(input, output)
	// Small batches so the second occurrence lands in a later batch and
	// can be served from the run cache
	flags.BatchSize = 2
	p := NewWithProvider(flags, mock)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var sent []string
	for _, call := range mock.Calls {
		sent = append(sent, call...)
	}
	if len(sent) != 2 {
		t.Errorf("Expected the repeated fragment to hit the cache, provider saw %v", sent)
	}
	if mock.CallCount() != 1 {
		t.Errorf("Expected a single provider call, got %d", mock.CallCount())
	}
}

func TestRun_PersistentMemoryAvoidsRetranslation(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteEPUB(t, dir, []testutil.Chapter{
		{Name: "OEBPS/ch1.xhtml", HTML: `<html><body><p>Stable sentence.</p></body></html>`},
	})

	memory, err := translate.OpenMemory(filepath.Join(dir, "memory.db"))
	if err != nil {
		t.Fatalf("Failed to open translation memory: %v", err)
	}
	defer memory.Close()

	first := &testutil.MockProvider{}
	p := NewWithProvider(testFlags(input, filepath.Join(dir, "first.epub")), first)
	p.SetMemory(memory)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.CallCount() != 1 {
		t.Fatalf("Expected one provider call on the first run, got %d", first.CallCount())
	}

	// Second run over the same document is served from the memory
	second := &testutil.MockProvider{}
	p2 := NewWithProvider(testFlags(input, filepath.Join(dir, "second.epub")), second)
	p2.SetMemory(memory)
	if err := p2.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if second.CallCount() != 0 {
		t.Errorf("Expected no provider calls on the second run, got %d", second.CallCount())
	}

	ch1 := string(testutil.ReadZipEntry(t, filepath.Join(dir, "second.epub"), "OEBPS/ch1.xhtml"))
	if !strings.Contains(ch1, "[de] Stable sentence.") {
		t.Errorf("Expected memory-served translation in output, got:\n%s", ch1)
	}
}

func TestRun_BacksUpExistingOutput(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteEPUB(t, dir, []testutil.Chapter{
		{Name: "OEBPS/ch1.xhtml", HTML: `<html><body><p>Text.</p></body></html>`},
	})
	output := filepath.Join(dir, "out.epub")
	if err := os.WriteFile(output, []byte("old output"), 0644); err != nil {
		t.Fatalf("Failed to write existing output: %v", err)
	}

	p := NewWithProvider(testFlags(input, output), &testutil.MockProvider{})
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	backups, err := filepath.Glob(output + ".*.bak")
	if err != nil || len(backups) != 1 {
		t.Fatalf("Expected one backup file, got %v (err=%v)", backups, err)
	}
	data, _ := os.ReadFile(backups[0])
	if string(data) != "old output" {
		t.Errorf("Backup contents = %q", data)
	}
}

func TestRun_SkipsFragmentsAlreadyInTargetLanguage(t *testing.T) {
	dir := t.TempDir()
	german := "Dies ist ein langer deutscher Beispielsatz, der bereits in der Zielsprache geschrieben wurde."
	input := testutil.WriteEPUB(t, dir, []testutil.Chapter{
		{Name: "OEBPS/ch1.xhtml", HTML: `<html><body><p>` + german + `</p><p>Short English text here.</p></body></html>`},
	})
	output := filepath.Join(dir, "out.epub")

	mock := &testutil.MockProvider{}
	p := NewWithProvider(testFlags(input, output), mock)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, call := range mock.Calls {
		for _, text := range call {
			if text == german {
				t.Error("German fragment should not reach the provider for target 'de'")
			}
		}
	}

	ch1 := string(testutil.ReadZipEntry(t, output, "OEBPS/ch1.xhtml"))
	if !strings.Contains(ch1, german) {
		t.Error("Expected the German fragment to pass through unchanged")
	}
}

func TestRun_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(input, []byte("plain text, not a document"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	p := NewWithProvider(testFlags(input, filepath.Join(dir, "out.epub")), &testutil.MockProvider{})
	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for unsupported input format")
	}
	if !strings.Contains(err.Error(), "neither PDF nor EPUB") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	p := NewWithProvider(testFlags(filepath.Join(dir, "missing.epub"), filepath.Join(dir, "out.epub")), &testutil.MockProvider{})

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected error for missing input file")
	}
}

func TestRun_ProviderFailure(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteEPUB(t, dir, []testutil.Chapter{
		{Name: "OEBPS/ch1.xhtml", HTML: `<html><body><p>Text.</p></body></html>`},
	})
	output := filepath.Join(dir, "out.epub")

	mock := &testutil.MockProvider{Err: context.DeadlineExceeded}
	p := NewWithProvider(testFlags(input, output), mock)

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected error when the provider fails")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("No output should be written on a failed run")
	}
}
