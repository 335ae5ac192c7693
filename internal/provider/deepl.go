package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// deepLLanguages is the target-language set the DeepL API accepts.
var deepLLanguages = map[string]bool{
	"bg": true, "cs": true, "da": true, "de": true, "el": true, "en": true,
	"es": true, "et": true, "fi": true, "fr": true, "hu": true, "id": true,
	"it": true, "ja": true, "ko": true, "lt": true, "lv": true, "nb": true,
	"nl": true, "pl": true, "pt": true, "ro": true, "ru": true, "sk": true,
	"sl": true, "sv": true, "tr": true, "uk": true, "zh": true,
}

// DeepLClient talks to the DeepL translation API.
type DeepLClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewDeepLClient creates a DeepL client from environment variables.
func NewDeepLClient() (*DeepLClient, error) {
	apiKey := os.Getenv("DEEPL_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPL_API_KEY must be set")
	}

	apiURL := os.Getenv("DEEPL_API_URL")
	if apiURL == "" {
		apiURL = "https://api-free.deepl.com/v2/translate"
	}

	return &DeepLClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Supports reports whether DeepL can translate into lang.
func (c *DeepLClient) Supports(lang string) bool {
	return deepLLanguages[strings.ToLower(lang)]
}

// Translate translates the texts in a single request. DeepL accepts repeated
// text parameters and returns translations in input order.
func (c *DeepLClient) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	form := url.Values{}
	form.Set("target_lang", strings.ToUpper(targetLang))
	for _, t := range texts {
		form.Add("text", t)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

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
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Translations) != len(texts) {
		return nil, fmt.Errorf("expected %d translations, got %d", len(texts), len(result.Translations))
	}

	out := make([]string, len(texts))
	for i, t := range result.Translations {
		out[i] = t.Text
	}
	return out, nil
}
