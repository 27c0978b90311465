package translate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator implements Provider using the Google Gemini API
type GeminiTranslator struct {
	apiKey string
	model  string
}

// NewGeminiTranslator creates a new Gemini-backed translator
func NewGeminiTranslator(config *Config) *GeminiTranslator {
	model := config.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiTranslator{
		apiKey: config.APIKey,
		model:  model,
	}
}

// Translate translates the texts one generate call at a time
func (t *GeminiTranslator) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if err := t.IsAvailable(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  t.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	translated := make([]string, len(texts))
	for i, text := range texts {
		prompt := fmt.Sprintf(
			"You are a professional translator. Translate the following text into %s. Respond with only the translated text, nothing else. Preserve any markup in the input.\n\n%s",
			targetLang, text)

		resp, err := client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
		if err != nil {
			return nil, fmt.Errorf("Gemini API error: %w", err)
		}

		out := strings.TrimSpace(resp.Text())
		if out == "" {
			return nil, fmt.Errorf("no translation returned for fragment %d", i)
		}
		translated[i] = out
	}

	return translated, nil
}

// Name returns the provider name
func (t *GeminiTranslator) Name() string {
	return "gemini"
}

// IsAvailable checks if the translator is configured
func (t *GeminiTranslator) IsAvailable() error {
	if t.apiKey == "" {
		return fmt.Errorf("Gemini API key not found")
	}
	return nil
}
