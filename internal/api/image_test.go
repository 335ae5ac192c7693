package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadImage(t *testing.T, app *testApp, token, recipeID, filename string) *httptest.ResponseRecorder {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("alt_text", "a test photo"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/"+recipeID+"/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestImageUploadAndDelete(t *testing.T) {
	app := setupTestApp(t)
	token := app.registerUser(t, "alice@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/recipes", token, recipeBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	resp := uploadImage(t, app, token, created.ID, "photo.png")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var img struct {
		ID           string `json:"id"`
		ThumbnailKey string `json:"thumbnail_key"`
		AltText      string `json:"alt_text"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &img))
	assert.NotEmpty(t, img.ThumbnailKey)
	assert.Equal(t, "a test photo", img.AltText)

	w = app.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID+"/images/"+img.ID+"/url", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/uploads/")

	w = app.do(t, http.MethodDelete, "/api/v1/recipes/"+created.ID+"/images/"+img.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodDelete, "/api/v1/recipes/"+created.ID+"/images/"+img.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageUploadForbiddenForNonOwner(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice@example.com")
	bob := app.registerUser(t, "bob@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/recipes", alice, recipeBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	resp := uploadImage(t, app, bob, created.ID, "photo.png")
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
