package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/service"
	"github.com/magicchef/magic-chef/backend/internal/testhelpers"
)

type webFixture struct {
	router  *gin.Engine
	handler *Handler
	recipes *service.RecipeService
	auth    *service.AuthService
	user    *models.User
}

func setupWeb(t *testing.T) *webFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	recipeService := service.NewRecipeService(db)
	authService := service.NewAuthService(db, "test-secret")

	user := models.User{Name: "Cook", Email: "cook@example.com", PasswordHash: "x", Language: "en"}
	require.NoError(t, db.Create(&user).Error)

	handler, err := NewHandler(recipeService, authService)
	require.NoError(t, err)

	router := gin.New()
	handler.RegisterRoutes(router)

	return &webFixture{
		router:  router,
		handler: handler,
		recipes: recipeService,
		auth:    authService,
		user:    &user,
	}
}

func publicRecipe(t *testing.T, recipes *service.RecipeService, user *models.User, title string) *models.Recipe {
	t.Helper()
	recipe, err := recipes.Create(user.ID, service.RecipeInput{
		Title:       title,
		Ingredients: []string{"4 tomatoes"},
		Steps:       []string{"Chop", "Simmer"},
		Tags:        []string{"soup"},
		IsPublic:    true,
	})
	require.NoError(t, err)
	return recipe
}

func get(router *gin.Engine, path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getSignedIn(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHomeShowsPublicRecipesToVisitors(t *testing.T) {
	fx := setupWeb(t)
	publicRecipe(t, fx.recipes, fx.user, "Tomato Soup")

	w := get(fx.router, "/", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), "Tomato Soup")
}

func TestHomeShowsOwnRecipesWhenSignedIn(t *testing.T) {
	fx := setupWeb(t)
	publicRecipe(t, fx.recipes, fx.user, "Tomato Soup")

	token, err := fx.auth.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	claims, err := fx.auth.ValidateToken(token)
	require.NoError(t, err)

	_, err = fx.recipes.Create(claims.UserID, service.RecipeInput{
		Title: "Secret Stew",
		Steps: []string{"Simmer"},
	})
	require.NoError(t, err)

	// Signed in, the home page is the user's own collection.
	w := getSignedIn(fx.router, "/", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Secret Stew")
	assert.NotContains(t, w.Body.String(), "Tomato Soup")

	// Anonymous visitors never see the private recipe.
	w = get(fx.router, "/", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")
	assert.NotContains(t, w.Body.String(), "Secret Stew")
}

func TestRecipePageHidesPrivateRecipes(t *testing.T) {
	fx := setupWeb(t)

	private, err := fx.recipes.Create(fx.user.ID, service.RecipeInput{
		Title: "Secret Sauce",
		Steps: []string{"Keep it secret"},
	})
	require.NoError(t, err)

	w := get(fx.router, "/recipes/"+private.ID.String(), false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipePageRendersDetails(t *testing.T) {
	fx := setupWeb(t)
	recipe := publicRecipe(t, fx.recipes, fx.user, "Tomato Soup")

	w := get(fx.router, "/recipes/"+recipe.ID.String(), false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")
	assert.Contains(t, w.Body.String(), "4 tomatoes")
	assert.Contains(t, w.Body.String(), "Simmer")
}

func TestSearchReturnsFragmentForHTMX(t *testing.T) {
	fx := setupWeb(t)
	publicRecipe(t, fx.recipes, fx.user, "Tomato Soup")
	publicRecipe(t, fx.recipes, fx.user, "Apple Pie")

	// A plain request renders the whole page.
	w := get(fx.router, "/search?q=tomato", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), "Tomato Soup")
	assert.NotContains(t, w.Body.String(), "Apple Pie")

	// htmx gets the result list alone.
	w = get(fx.router, "/search?q=tomato", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), "Tomato Soup")
}

func TestRecipesPageFiltersByTag(t *testing.T) {
	fx := setupWeb(t)
	publicRecipe(t, fx.recipes, fx.user, "Tomato Soup")

	w := get(fx.router, "/recipes?tag=soup", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")

	w = get(fx.router, "/recipes?tag=dessert", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No recipes found")
}

func TestRenderErrorsAnswer500(t *testing.T) {
	fx := setupWeb(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fx.handler.renderFragment(c, "no_such_fragment", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	fx.handler.render(c, "no_such_page.html", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
