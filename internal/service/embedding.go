package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a deterministic embedding for the given text.
// The vector is a fixed character profile (length, vowels, consonants,
// digits), which keeps search ranking stable for a fixed query.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants, digits float32
	for _, r := range text {
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
		case r >= 'a' && r <= 'z':
			consonants++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants, digits})
}
