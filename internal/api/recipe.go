package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicchef/magic-chef/backend/internal/middleware"
	"github.com/magicchef/magic-chef/backend/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
	authService   *service.AuthService
}

func NewRecipeHandler(recipeService *service.RecipeService, imageService *service.ImageService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		authService:   authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes", auth)
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/copy", h.CopyRecipe)
		recipes.GET("/shared", h.ListSharedWithMe)
		recipes.GET("/:id/shares", h.ListShares)
		recipes.POST("/:id/shares", h.ShareRecipe)
		recipes.DELETE("/:id/shares/:userID", h.UnshareRecipe)
	}

	router.GET("/tags", auth, h.ListTags)
}

// ListRecipes returns the caller's own recipes, newest first.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListByOwner(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SearchRecipes matches the caller's recipes plus public ones against any of
// q, tag and ingredient.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.Search(userID, service.SearchQuery{
		Query:      c.Query("q"),
		Tag:        c.Query("tag"),
		Ingredient: c.Query("ingredient"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipeService.Create(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipeService.Update(userID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	keys, err := h.recipeService.Delete(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	// Storage cleanup happens after the transaction committed; a failure here
	// only leaves orphaned objects, never dangling rows.
	h.imageService.CleanupKeys(context.WithoutCancel(c.Request.Context()), keys)

	c.Status(http.StatusNoContent)
}

// CopyRecipe duplicates a readable recipe into the caller's collection.
func (h *RecipeHandler) CopyRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Copy(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// ShareRequest names the user a recipe is shared with.
type ShareRequest struct {
	Email string `json:"email" binding:"required"`
}

// ShareRecipe grants another user read access to the caller's recipe.
func (h *RecipeHandler) ShareRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	share, err := h.recipeService.Share(userID, id, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, share)
}

// UnshareRecipe revokes a share. Owner only.
func (h *RecipeHandler) UnshareRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	sharedWith, ok := pathUUID(c, "userID")
	if !ok {
		return
	}

	if err := h.recipeService.Unshare(userID, id, sharedWith); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListShares returns who the recipe has been shared with. Owner only.
func (h *RecipeHandler) ListShares(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	shares, err := h.recipeService.Shares(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// ListSharedWithMe returns recipes other users shared with the caller.
func (h *RecipeHandler) ListSharedWithMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.SharedWithMe(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) ListTags(c *gin.Context) {
	tags, err := h.recipeService.AllTags()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
