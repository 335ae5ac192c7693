package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magicchef/magic-chef/backend/config"
	"github.com/magicchef/magic-chef/backend/internal/database"
	"github.com/magicchef/magic-chef/backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	healthDB, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer healthDB.Close()

	gormDB, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Migrations run before the server accepts traffic; a failed migration
	// keeps the process from starting at all.
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.RunMigrations(gormDB, migrationsDir); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Redis connection error: %v", err)
	}
	defer rdb.Close()

	srv, err := server.New(context.Background(), cfg, gormDB, healthDB, rdb)
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
