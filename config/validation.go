package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	validAIProviders = map[string]bool{
		AIProviderDeepSeek: true,
		AIProviderOllama:   true,
	}
	validTranslationProviders = map[string]bool{
		TranslationProviderDeepL:          true,
		TranslationProviderLibreTranslate: true,
	}
	validOCRProviders = map[string]bool{
		OCRProviderMistral:   true,
		OCRProviderTesseract: true,
	}
	validStorageProviders = map[string]bool{
		StorageProviderLocal: true,
		StorageProviderS3:    true,
	}
)

// Validate checks that the configuration is usable before the server starts.
func Validate(cfg *Config) error {
	var errors []string

	if IsProduction() && cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required in production")
	}
	if IsProduction() && cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD is required in production")
	}

	if !validAIProviders[cfg.AIProvider] {
		errors = append(errors, fmt.Sprintf("unknown AI_PROVIDER %q", cfg.AIProvider))
	}
	if !validTranslationProviders[cfg.TranslationProvider] {
		errors = append(errors, fmt.Sprintf("unknown TRANSLATION_PROVIDER %q", cfg.TranslationProvider))
	}
	if !validOCRProviders[cfg.OCRProvider] {
		errors = append(errors, fmt.Sprintf("unknown OCR_PROVIDER %q", cfg.OCRProvider))
	}
	if !validStorageProviders[cfg.StorageProvider] {
		errors = append(errors, fmt.Sprintf("unknown STORAGE_PROVIDER %q", cfg.StorageProvider))
	}

	if cfg.StorageProvider == StorageProviderS3 && cfg.S3Bucket == "" {
		errors = append(errors, "S3_BUCKET_NAME is required when STORAGE_PROVIDER=s3")
	}
	if cfg.MaxUploadBytes <= 0 {
		errors = append(errors, "MAX_UPLOAD_BYTES must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
