package service

import (
	"fmt"
	"path/filepath"
	"strings"
)

// imageExtensions are accepted for recipe image uploads.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// ocrExtensions additionally allow scanned documents.
var ocrExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".pdf": true, ".tiff": true,
}

// ValidateUpload rejects oversized or unsupported files. It runs before any
// provider or storage call.
func ValidateUpload(filename string, size, maxBytes int64, allowed map[string]bool) error {
	if size <= 0 {
		return validationErr("empty file")
	}
	if size > maxBytes {
		return validationErr(fmt.Sprintf("file exceeds the %d byte upload limit", maxBytes))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowed[ext] {
		return validationErr(fmt.Sprintf("unsupported file type %q", ext))
	}
	return nil
}
