package config

import (
	"fmt"
	"os"
	"strconv"
)

// Provider selection values recognised by the adapter factory.
const (
	AIProviderDeepSeek = "deepseek"
	AIProviderOllama   = "ollama"

	TranslationProviderDeepL          = "deepl"
	TranslationProviderLibreTranslate = "libretranslate"

	OCRProviderMistral   = "mistral"
	OCRProviderTesseract = "tesseract"

	StorageProviderLocal = "local"
	StorageProviderS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Provider selection
	AIProvider          string
	TranslationProvider string
	OCRProvider         string
	StorageProvider     string

	// Upload limits
	UploadDir      string
	MaxUploadBytes int64

	// S3 storage
	S3Bucket  string
	AWSRegion string
}

// Load builds a Config from environment variables with development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "magicchef"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AIProvider:          getEnv("AI_PROVIDER", AIProviderDeepSeek),
		TranslationProvider: getEnv("TRANSLATION_PROVIDER", TranslationProviderLibreTranslate),
		OCRProvider:         getEnv("OCR_PROVIDER", OCRProviderMistral),
		StorageProvider:     getEnv("STORAGE_PROVIDER", StorageProviderLocal),

		UploadDir:      getEnv("UPLOAD_DIR", "data/uploads"),
		MaxUploadBytes: 16 << 20,

		S3Bucket:  getEnv("S3_BUCKET_NAME", "magic-chef-recipe-images"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if maxStr := os.Getenv("MAX_UPLOAD_BYTES"); maxStr != "" {
		max, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES value %q: %w", maxStr, err)
		}
		cfg.MaxUploadBytes = max
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
