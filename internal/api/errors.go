package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicchef/magic-chef/backend/internal/service"
)

// respondError maps service errors onto HTTP statuses. Provider failures are
// reported as bad gateway since the client request itself was fine.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var perr *service.ProviderError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message})
	case errors.As(err, &perr):
		log.Printf("provider error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": perr.Op + " failed"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrUnsupportedLanguage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unsupported target language"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
