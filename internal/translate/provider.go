package translate

import (
	"context"
	"fmt"
)

// Provider defines the interface for translation backends
type Provider interface {
	// Translate translates the given texts into the target language,
	// returning the translations in the same order
	Translate(ctx context.Context, texts []string, targetLang string) ([]string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for translation providers
type Config struct {
	Provider string // Provider name: "google", "openai" or "gemini"
	APIKey   string

	// Model overrides the default model for the LLM providers
	Model string

	// Endpoint overrides the Google Translate API base URL (used in tests)
	Endpoint string

	// RequestsPerMinute caps outgoing API calls; 0 uses the default
	RequestsPerMinute int
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "google",
		RequestsPerMinute: 120,
	}
}

// NewProvider creates the appropriate translation provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q", config.Provider)
	}

	switch config.Provider {
	case "google":
		return NewGoogleClient(config), nil

	case "openai":
		return NewOpenAITranslator(config), nil

	case "gemini":
		return NewGeminiTranslator(config), nil

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Translate tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	translated, err := p.primary.Translate(ctx, texts, targetLang)
	if err != nil {
		fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
			p.primary.Name(), err, p.fallback.Name())

		return p.fallback.Translate(ctx, texts, targetLang)
	}
	return translated, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
