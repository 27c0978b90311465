package testutil

import (
	"context"
	"fmt"
)

// MockProvider is a translation provider for tests. By default it returns
// each text wrapped in the target language code, e.g. "[de] hello", so
// substitution is easy to assert on.
type MockProvider struct {
	// Translations maps input text to a fixed output; unmapped texts get
	// the default wrapping
	Translations map[string]string

	// Err, when set, is returned from every call
	Err error

	// Calls records every batch passed to Translate
	Calls [][]string
}

// Translate implements translate.Provider
func (m *MockProvider) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	m.Calls = append(m.Calls, append([]string(nil), texts...))

	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]string, len(texts))
	for i, text := range texts {
		if fixed, ok := m.Translations[text]; ok {
			out[i] = fixed
			continue
		}
		out[i] = fmt.Sprintf("[%s] %s", targetLang, text)
	}
	return out, nil
}

// Name implements translate.Provider
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable implements translate.Provider
func (m *MockProvider) IsAvailable() error {
	return m.Err
}

// CallCount returns the number of Translate calls made
func (m *MockProvider) CallCount() int {
	return len(m.Calls)
}
