package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/magicchef/magic-chef/backend/internal/api"
	"github.com/magicchef/magic-chef/backend/internal/database"
	"github.com/magicchef/magic-chef/backend/internal/middleware"
	"github.com/magicchef/magic-chef/backend/internal/provider"
	"github.com/magicchef/magic-chef/backend/internal/web"
)

// Deps collects everything the router wires together.
type Deps struct {
	HealthDB *database.DB
	Redis    *redis.Client
	Store    provider.ObjectStore

	AuthHandler         *api.AuthHandler
	RecipeHandler       *api.RecipeHandler
	IntelligenceHandler *api.IntelligenceHandler
	ImageHandler        *api.ImageHandler
	WebHandler          *web.Handler
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", healthHandler(deps.HealthDB, deps.Redis))

	// Local uploads are served straight from disk; S3 objects carry their
	// own URLs.
	if local, ok := deps.Store.(*provider.LocalStore); ok {
		router.Static("/uploads", local.BaseDir())
	}

	v1 := router.Group("/api/v1")
	{
		deps.AuthHandler.RegisterRoutes(v1)
		deps.RecipeHandler.RegisterRoutes(v1)
		deps.IntelligenceHandler.RegisterRoutes(v1)
		deps.ImageHandler.RegisterRoutes(v1)
	}

	if deps.WebHandler != nil {
		deps.WebHandler.RegisterRoutes(router)
	}

	return router
}

// healthHandler reports whether the database and redis are reachable.
func healthHandler(db *database.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if db == nil || db.HealthCheck(ctx) != nil {
			checks["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "unreachable"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status": overall,
			"checks": checks,
		})
	}
}
