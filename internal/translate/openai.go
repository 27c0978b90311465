package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = "You are a professional translator. Respond with only the translated text, nothing else. Preserve any markup in the input."

// OpenAITranslator implements Provider using the OpenAI chat completion API
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new OpenAI-backed translator
func NewOpenAITranslator(config *Config) *OpenAITranslator {
	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		apiKey: config.APIKey,
		model:  model,
		client: openai.NewClient(config.APIKey),
	}
}

// Translate translates the texts one chat completion at a time. The chat API
// has no batch endpoint, so the batch keeps request bookkeeping simple rather
// than saving round trips here.
func (t *OpenAITranslator) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if err := t.IsAvailable(); err != nil {
		return nil, err
	}

	translated := make([]string, len(texts))
	for i, text := range texts {
		req := openai.ChatCompletionRequest{
			Model: t.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: openAISystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Please translate the following text into %s:\n%s", targetLang, text),
				},
			},
			Temperature: 0.3,
		}

		resp, err := t.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no translation returned for fragment %d", i)
		}

		translated[i] = strings.TrimSpace(resp.Choices[0].Message.Content)
	}

	return translated, nil
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string {
	return "openai"
}

// IsAvailable checks if the translator is configured
func (t *OpenAITranslator) IsAvailable() error {
	if t.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found")
	}
	return nil
}
