package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepSeekGenerateRecipe(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "```json\n" + `{
					"title": "Tomato Basil Pasta",
					"description": "Quick pasta",
					"servings": 2,
					"total_time_minutes": 25,
					"ingredients": ["3 tomatoes", "basil"],
					"steps": ["Boil pasta", "Toss with sauce"],
					"tags": ["pasta"]
				}` + "\n```"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_API_URL", ts.URL)

	client, err := NewDeepSeekClient()
	require.NoError(t, err)

	recipe, err := client.GenerateRecipe(context.Background(), GenerationRequest{
		Ingredients: []string{"tomato", "basil"},
		Servings:    2,
		Diet:        "vegetarian",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Tomato Basil Pasta", recipe.Title)
	assert.Equal(t, 2, recipe.Servings)
	assert.Len(t, recipe.Steps, 2)

	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[1].Content, "tomato, basil")
	assert.Contains(t, gotReq.Messages[1].Content, "serve 2 people")
	assert.Contains(t, gotReq.Messages[1].Content, "vegetarian")
}

func TestDeepSeekGenerateRecipeServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_API_URL", ts.URL)

	client, err := NewDeepSeekClient()
	require.NoError(t, err)

	_, err = client.GenerateRecipe(context.Background(), GenerationRequest{Ingredients: []string{"tomato"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewDeepSeekClientRequiresKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY_FILE", "")

	_, err := NewDeepSeekClient()
	assert.Error(t, err)
}

func TestParseGeneratedRecipeToleratesFences(t *testing.T) {
	for _, content := range []string{
		`{"title":"Plain","steps":["one"]}`,
		"```json\n{\"title\":\"Plain\",\"steps\":[\"one\"]}\n```",
		"```\n{\"title\":\"Plain\",\"steps\":[\"one\"]}\n```",
	} {
		recipe, err := parseGeneratedRecipe(content)
		require.NoError(t, err, content)
		assert.Equal(t, "Plain", recipe.Title)
	}

	_, err := parseGeneratedRecipe("this is not json")
	assert.Error(t, err)
}

func TestBuildGenerationPrompt(t *testing.T) {
	prompt := buildGenerationPrompt(GenerationRequest{Ingredients: []string{"eggs", "flour"}})
	assert.True(t, strings.HasPrefix(prompt, "Generate a recipe using these ingredients: eggs, flour"))
	assert.NotContains(t, prompt, "serve")
}
