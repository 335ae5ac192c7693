package provider

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TesseractEngine runs the local tesseract binary for OCR.
type TesseractEngine struct {
	binary string
	lang   string
}

// NewTesseractEngine creates an engine from environment variables.
func NewTesseractEngine() *TesseractEngine {
	binary := os.Getenv("TESSERACT_BINARY")
	if binary == "" {
		binary = "tesseract"
	}

	lang := os.Getenv("TESSERACT_LANG")
	if lang == "" {
		lang = "eng"
	}

	return &TesseractEngine{binary: binary, lang: lang}
}

// ExtractText writes the image to a temporary file and invokes tesseract,
// reading the recognised text from stdout.
func (e *TesseractEngine) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
	}

	tmp, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.binary, tmp.Name(), "stdout", "-l", e.lang)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("tesseract failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("failed to run tesseract: %w", err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("no text recognised in image")
	}

	return text, nil
}
