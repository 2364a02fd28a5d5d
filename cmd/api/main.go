package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/logger"
	"github.com/plateshare/backend/internal/router"
	"github.com/plateshare/backend/internal/server"
	"github.com/plateshare/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Redis backs the logout denylist; the API still serves without it.
	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("redis unavailable, token revocation disabled", zap.Error(err))
		redisClient = nil
	}

	authService := service.NewAuthService(db, redisClient, cfg.JWT.Secret)
	recipeService := service.NewRecipeService(db)
	userService := service.NewUserService(db, recipeService)

	var imageService *service.ImageService
	if s3cfg, err := config.NewS3Config(context.Background(), cfg.S3); err != nil {
		log.Warn("s3 unavailable, image upload disabled", zap.Error(err))
	} else {
		imageService = service.NewImageService(s3cfg, log)
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService, userService),
		api.NewRecipeHandler(recipeService, imageService, authService),
		api.NewUserHandler(userService, authService),
		api.NewHealthHandler(db, redisClient),
		log,
	)

	srv := server.New(cfg, engine, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
