package translate

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/ziggurat/internal/testutil"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{"google", "google"},
		{"openai", "openai"},
		{"gemini", "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewProvider(&Config{Provider: tt.provider, APIKey: "test-key"})
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected provider name %q, got %q", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(&Config{Provider: "babelfish", APIKey: "test-key"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(&Config{Provider: "google"})
	if err == nil {
		t.Fatal("Expected error when no API key is configured")
	}
}

func TestProviderWithFallback(t *testing.T) {
	primary := &testutil.MockProvider{Err: errors.New("quota exceeded")}
	fallback := &testutil.MockProvider{}

	p := NewProviderWithFallback(primary, fallback)
	translated, err := p.Translate(context.Background(), []string{"hello"}, "de")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if translated[0] != "[de] hello" {
		t.Errorf("Expected fallback translation, got %q", translated[0])
	}
	if primary.CallCount() != 1 || fallback.CallCount() != 1 {
		t.Errorf("Expected both providers called once, got %d/%d",
			primary.CallCount(), fallback.CallCount())
	}
}

func TestProviderWithFallback_PrimarySucceeds(t *testing.T) {
	primary := &testutil.MockProvider{}
	fallback := &testutil.MockProvider{}

	p := NewProviderWithFallback(primary, fallback)
	if _, err := p.Translate(context.Background(), []string{"hello"}, "de"); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if fallback.CallCount() != 0 {
		t.Error("Fallback should not be called when the primary succeeds")
	}
}
