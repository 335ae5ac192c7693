// Package provider contains the thin clients wrapping the third-party
// generation, translation, OCR and storage services. Each concern is an
// interface with interchangeable implementations selected by configuration.
package provider

import (
	"context"
	"fmt"

	"github.com/magicchef/magic-chef/backend/config"
)

// GenerationRequest carries the user input forwarded to the AI provider.
type GenerationRequest struct {
	Ingredients []string
	Servings    int
	Diet        string
}

// GeneratedRecipe is the parsed provider response.
type GeneratedRecipe struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Servings         int      `json:"servings"`
	TotalTimeMinutes int      `json:"total_time_minutes"`
	Ingredients      []string `json:"ingredients"`
	Steps            []string `json:"steps"`
	Tags             []string `json:"tags"`
}

// RecipeGenerator generates a recipe from an ingredient list.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, req GenerationRequest) (*GeneratedRecipe, error)
}

// Translator translates a batch of texts into the target language. The
// result has one entry per input, in order.
type Translator interface {
	Translate(ctx context.Context, texts []string, targetLang string) ([]string, error)
	Supports(lang string) bool
}

// OCREngine extracts text from an uploaded image.
type OCREngine interface {
	ExtractText(ctx context.Context, image []byte, filename string) (string, error)
}

// ObjectStore persists uploaded files. Put returns a public URL for the key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewRecipeGenerator selects the generation provider from configuration.
func NewRecipeGenerator(cfg *config.Config) (RecipeGenerator, error) {
	switch cfg.AIProvider {
	case config.AIProviderDeepSeek:
		return NewDeepSeekClient()
	case config.AIProviderOllama:
		return NewOllamaClient(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AIProvider)
	}
}

// NewTranslator selects the translation provider from configuration.
func NewTranslator(cfg *config.Config) (Translator, error) {
	switch cfg.TranslationProvider {
	case config.TranslationProviderDeepL:
		return NewDeepLClient()
	case config.TranslationProviderLibreTranslate:
		return NewLibreTranslateClient(), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.TranslationProvider)
	}
}

// NewOCREngine selects the OCR engine from configuration.
func NewOCREngine(cfg *config.Config) (OCREngine, error) {
	switch cfg.OCRProvider {
	case config.OCRProviderMistral:
		return NewMistralOCRClient()
	case config.OCRProviderTesseract:
		return NewTesseractEngine(), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider: %s", cfg.OCRProvider)
	}
}

// NewObjectStore selects the storage backend from configuration.
func NewObjectStore(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.StorageProvider {
	case config.StorageProviderLocal:
		return NewLocalStore(cfg.UploadDir)
	case config.StorageProviderS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(s3cfg), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.StorageProvider)
	}
}
