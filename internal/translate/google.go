package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	googleAPIURL  = "https://translation.googleapis.com/language/translate/v2"
	googleTimeout = 60 * time.Second
)

// GoogleClient implements Provider for the Google Translate v2 REST API
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// googleRequest is the v2 translate request body. Format "html" keeps
// entities intact for EPUB fragments and is harmless for plain text.
type googleRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

// googleResponse represents the API response structure
type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// googleErrorResponse represents an API error payload
type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGoogleClient creates a new Google Translate API client
func NewGoogleClient(config *Config) *GoogleClient {
	baseURL := config.Endpoint
	if baseURL == "" {
		baseURL = googleAPIURL
	}
	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 120
	}

	return &GoogleClient{
		apiKey:  config.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: googleTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}
}

// Translate sends one batched request with all texts; the API returns the
// translations in request order.
func (g *GoogleClient) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := g.IsAvailable(); err != nil {
		return nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(googleRequest{
		Q:      texts,
		Target: targetLang,
		Format: "html",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr googleErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("Google Translate API error (%d %s): %s",
				apiErr.Error.Code, apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("Google Translate API returned status %d: %s",
			resp.StatusCode, string(raw))
	}

	var result googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data.Translations) != len(texts) {
		return nil, fmt.Errorf("expected %d translations, got %d",
			len(texts), len(result.Data.Translations))
	}

	translated := make([]string, len(texts))
	for i, t := range result.Data.Translations {
		translated[i] = t.TranslatedText
	}
	return translated, nil
}

// Name returns the provider name
func (g *GoogleClient) Name() string {
	return "google"
}

// IsAvailable checks if the client is configured
func (g *GoogleClient) IsAvailable() error {
	if g.apiKey == "" {
		return fmt.Errorf("Google Translate API key not found")
	}
	return nil
}
