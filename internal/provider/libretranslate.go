package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// batchDelimiter joins texts into a single translation request; the provider
// leaves it untouched so the result can be split back into the inputs.
const batchDelimiter = " ||| "

var libreTranslateLanguages = map[string]bool{
	"ar": true, "cs": true, "da": true, "de": true, "el": true, "en": true,
	"es": true, "fi": true, "fr": true, "hi": true, "hu": true, "id": true,
	"it": true, "ja": true, "ko": true, "nl": true, "pl": true, "pt": true,
	"ru": true, "sv": true, "tr": true, "uk": true, "zh": true,
}

// LibreTranslateClient talks to a LibreTranslate-compatible endpoint.
type LibreTranslateClient struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewLibreTranslateClient creates a client from environment variables.
func NewLibreTranslateClient() *LibreTranslateClient {
	apiURL := os.Getenv("LIBRETRANSLATE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5000/translate"
	}

	return &LibreTranslateClient{
		apiURL: apiURL,
		apiKey: os.Getenv("LIBRETRANSLATE_API_KEY"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Supports reports whether the endpoint can translate into lang.
func (c *LibreTranslateClient) Supports(lang string) bool {
	return libreTranslateLanguages[strings.ToLower(lang)]
}

// Translate joins the texts with a delimiter, translates the batch and splits
// the result, mirroring the single-request batching the upstream API expects.
func (c *LibreTranslateClient) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := map[string]string{
		"q":       strings.Join(texts, batchDelimiter),
		"source":  "auto",
		"target":  strings.ToLower(targetLang),
		"format":  "text",
		"api_key": c.apiKey,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	parts := strings.Split(result.TranslatedText, strings.TrimSpace(batchDelimiter))
	if len(parts) != len(texts) {
		return nil, fmt.Errorf("expected %d translated segments, got %d", len(texts), len(parts))
	}

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out, nil
}
