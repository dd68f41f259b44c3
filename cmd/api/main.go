package main

import (
	"context"
	"log"
	"net"
	"os"

	"github.com/pantrykeep/backend/config"
	"github.com/pantrykeep/backend/internal/api"
	"github.com/pantrykeep/backend/internal/database"
	"github.com/pantrykeep/backend/internal/middleware"
	"github.com/pantrykeep/backend/internal/router"
	"github.com/pantrykeep/backend/internal/server"
	"github.com/pantrykeep/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.RunMigrations(db, migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)

	generator, err := service.NewGeminiClient()
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	aiService := service.NewAIService(generator)

	var imageService *service.ImageService
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3cfg)
	}

	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(db, authService),
		Inventory: api.NewInventoryHandler(db),
		Recipe:    api.NewRecipeHandler(db, imageService),
		MealPlan:  api.NewMealPlanHandler(db),
		Grocery:   api.NewGroceryHandler(db),
		AIRecipes: api.NewAIRecipesHandler(aiService, 0),
		Health:    api.NewHealthHandler(db, redisClient),
	}

	var aiLimiter *middleware.RateLimiter
	if redisClient != nil {
		aiLimiter = middleware.NewAIRecipesRateLimiter(redisClient)
	}

	engine := router.SetupRouter(handlers, authService, aiLimiter)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	srv := server.NewServer(engine, addr)
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
