package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mAbdullah821/gallery-app-task/internal/api"
	authapi "github.com/mAbdullah821/gallery-app-task/internal/api/auth"
	fileapi "github.com/mAbdullah821/gallery-app-task/internal/api/file"
	imageapi "github.com/mAbdullah821/gallery-app-task/internal/api/image"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/config"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/jwt"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/logger"
	"github.com/mAbdullah821/gallery-app-task/internal/pkg/redis"
	"github.com/mAbdullah821/gallery-app-task/internal/repository"
	"github.com/mAbdullah821/gallery-app-task/internal/service"
	"github.com/mAbdullah821/gallery-app-task/internal/storage"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Gallery API")

	if err := repository.InitDB(cfg.Database.Path); err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer repository.Close()

	// Redis is optional; without it rate limiting falls back to in-process
	if cfg.Redis.Addr != "" {
		if err := redis.Init(cfg.Redis); err != nil {
			zap.L().Warn("Redis initialization failed, using in-process rate limiting",
				zap.Error(err))
		} else {
			defer redis.Close()
		}
	}

	ctx := context.Background()
	store, err := storage.NewGCSStore(ctx, cfg.Storage.Bucket)
	if err != nil {
		zap.L().Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Explicit constructor wiring, leaves first
	tokens := jwt.NewIssuer(cfg.Auth)
	limiter := service.NewAuthRateLimit(redis.GetClient(), cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	authSvc := service.NewAuthService(tokens)
	fileSvc := service.NewFileService(store, cfg.Storage.Bucket)
	imageSvc := service.NewImageService(fileSvc)

	authH := authapi.NewHandler(authSvc, tokens, limiter)
	fileH := fileapi.NewHandler(fileSvc)
	imageH := imageapi.NewHandler(imageSvc)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	api.SetupRouter(r, authH, fileH, imageH)

	zap.L().Info("Listening", zap.String("addr", cfg.GetServerAddr()))
	if err := r.Run(cfg.GetServerAddr()); err != nil {
		zap.L().Fatal("Failed to start server", zap.Error(err))
	}
}
