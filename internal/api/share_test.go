package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeSharingFlow(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice@example.com")
	bob := app.registerUser(t, "bob@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/recipes", alice, recipeBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Private recipe is hidden from bob until shared.
	w = app.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID, bob, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/recipes/"+created.ID+"/shares", alice, gin.H{"email": "bob@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var share struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &share))

	w = app.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/recipes/shared", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")

	w = app.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID+"/shares", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), share.UserID)

	w = app.do(t, http.MethodDelete, "/api/v1/recipes/"+created.ID+"/shares/"+share.UserID, alice, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShareStatuses(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice@example.com")
	bob := app.registerUser(t, "bob@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/recipes", alice, recipeBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Unknown recipient.
	w = app.do(t, http.MethodPost, "/api/v1/recipes/"+created.ID+"/shares", alice, gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Only the owner may share.
	w = app.do(t, http.MethodPost, "/api/v1/recipes/"+created.ID+"/shares", bob, gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing email body.
	w = app.do(t, http.MethodPost, "/api/v1/recipes/"+created.ID+"/shares", alice, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
