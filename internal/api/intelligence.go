package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicchef/magic-chef/backend/internal/middleware"
	"github.com/magicchef/magic-chef/backend/internal/service"
)

type GenerateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Servings    int      `json:"servings"`
	Diet        string   `json:"diet"`
}

type TranslateRequest struct {
	TargetLang string `json:"target_lang" binding:"required"`
}

type ConfirmDraftRequest struct {
	service.RecipeInput
}

// IntelligenceHandler exposes the delegated capabilities: AI generation,
// translation and OCR digitization.
type IntelligenceHandler struct {
	generationService  *service.GenerationService
	translationService *service.TranslationService
	ocrService         *service.OCRService
	authService        *service.AuthService
}

func NewIntelligenceHandler(
	generationService *service.GenerationService,
	translationService *service.TranslationService,
	ocrService *service.OCRService,
	authService *service.AuthService,
) *IntelligenceHandler {
	return &IntelligenceHandler{
		generationService:  generationService,
		translationService: translationService,
		ocrService:         ocrService,
		authService:        authService,
	}
}

func (h *IntelligenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes", auth)
	{
		recipes.POST("/generate", h.Generate)
		recipes.POST("/:id/translate", h.Translate)
		recipes.POST("/ocr", h.ExtractFromImage)
	}

	drafts := router.Group("/drafts", auth)
	{
		drafts.GET("/:id", h.GetDraft)
		drafts.POST("/:id/confirm", h.ConfirmDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
	}
}

func (h *IntelligenceHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.generationService.Generate(c.Request.Context(), userID, req.Ingredients, req.Servings, req.Diet)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *IntelligenceHandler) Translate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.translationService.Translate(c.Request.Context(), userID, id, req.TargetLang)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// ExtractFromImage accepts a multipart upload of a photographed or scanned
// recipe and returns a draft for review.
func (h *IntelligenceHandler) ExtractFromImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	draft, err := h.ocrService.Extract(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (h *IntelligenceHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.ocrService.Draft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *IntelligenceHandler) ConfirmDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ConfirmDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.ocrService.Confirm(c.Request.Context(), userID, c.Param("id"), req.RecipeInput)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *IntelligenceHandler) DeleteDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.ocrService.Discard(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
