package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/magicchef/magic-chef/backend/config"
	"github.com/magicchef/magic-chef/backend/internal/api"
	"github.com/magicchef/magic-chef/backend/internal/database"
	"github.com/magicchef/magic-chef/backend/internal/provider"
	"github.com/magicchef/magic-chef/backend/internal/router"
	"github.com/magicchef/magic-chef/backend/internal/service"
	"github.com/magicchef/magic-chef/backend/internal/web"
)

// Server wires the services, providers and routes into one HTTP server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New builds the full application from its configuration: provider adapters
// from the env-selected backends, services on top, handlers on top of those.
func New(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, healthDB *database.DB, rdb *redis.Client) (*Server, error) {
	generator, err := provider.NewRecipeGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build recipe generator: %w", err)
	}
	translator, err := provider.NewTranslator(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build translator: %w", err)
	}
	ocrEngine, err := provider.NewOCREngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build OCR engine: %w", err)
	}
	store, err := provider.NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build object store: %w", err)
	}

	authService := service.NewAuthService(gormDB, cfg.JWTSecret)
	recipeService := service.NewRecipeService(gormDB)
	imageService := service.NewImageService(gormDB, recipeService, store, cfg.MaxUploadBytes)
	generationService := service.NewGenerationService(recipeService, generator)
	translationService := service.NewTranslationService(recipeService, translator)
	drafts := service.NewRedisDraftStore(rdb)
	ocrService := service.NewOCRService(recipeService, ocrEngine, drafts, cfg.MaxUploadBytes)

	webHandler, err := web.NewHandler(recipeService, authService)
	if err != nil {
		return nil, fmt.Errorf("failed to build web handler: %w", err)
	}

	engine := router.SetupRouter(router.Deps{
		HealthDB: healthDB,
		Redis:    rdb,
		Store:    store,

		AuthHandler:         api.NewAuthHandler(authService),
		RecipeHandler:       api.NewRecipeHandler(recipeService, imageService, authService),
		IntelligenceHandler: api.NewIntelligenceHandler(generationService, translationService, ocrService, authService),
		ImageHandler:        api.NewImageHandler(imageService, authService),
		WebHandler:          webHandler,
	})

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
