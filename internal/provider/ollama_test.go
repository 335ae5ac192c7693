package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerateRecipe(t *testing.T) {
	var gotReq ollamaChatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"content": `{"title":"Garlic Bread","steps":["Toast it"]}`},
			"done":    true,
		})
	}))
	defer ts.Close()

	t.Setenv("OLLAMA_HOST", ts.URL)
	t.Setenv("OLLAMA_MODEL", "test-model")

	client := NewOllamaClient()
	recipe, err := client.GenerateRecipe(context.Background(), GenerationRequest{Ingredients: []string{"garlic", "bread"}})
	require.NoError(t, err)

	assert.Equal(t, "Garlic Bread", recipe.Title)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "json", gotReq.Format)
	assert.False(t, gotReq.Stream)
}

func TestOllamaGenerateRecipeEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"content": ""},
			"done":    true,
		})
	}))
	defer ts.Close()

	t.Setenv("OLLAMA_HOST", ts.URL)

	client := NewOllamaClient()
	_, err := client.GenerateRecipe(context.Background(), GenerationRequest{Ingredients: []string{"garlic"}})
	assert.Error(t, err)
}
