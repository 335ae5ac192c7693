package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicchef/magic-chef/backend/internal/middleware"
	"github.com/magicchef/magic-chef/backend/internal/service"
)

type ImageHandler struct {
	imageService *service.ImageService
	authService  *service.AuthService
}

func NewImageHandler(imageService *service.ImageService, authService *service.AuthService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		authService:  authService,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	images := router.Group("/recipes/:id/images", auth)
	{
		images.POST("", h.UploadImage)
		images.GET("/:imageID/url", h.ImageURL)
		images.DELETE("/:imageID", h.DeleteImage)
	}
}

// ImageURL resolves a download URL for the image: a presigned link on S3, a
// static path on local storage.
func (h *ImageHandler) ImageURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "imageID")
	if !ok {
		return
	}

	url, err := h.imageService.URL(c.Request.Context(), userID, recipeID, imageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ImageHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
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

	img, err := h.imageService.Attach(c.Request.Context(), userID, recipeID, fileHeader.Filename, fileHeader.Size, data, c.PostForm("alt_text"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, img)
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "imageID")
	if !ok {
		return
	}

	if err := h.imageService.Remove(c.Request.Context(), userID, recipeID, imageID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
