package main

import (
	"context"
	"net/http"
	"os"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/api"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/cache"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/config"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/handler"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/logger"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Cache : Redis si configuré, sinon mémoire
	var c cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Error("Redis connection failed: %v", err)
			os.Exit(1)
		}
		logger.Success("Connected to Redis at %s", cfg.RedisAddr)
		c = redisCache
	} else {
		logger.Warning("REDIS_ADDR not set, using in-memory cache")
		c = cache.NewMemory()
	}

	// Services externes
	stockService := services.NewStockPriceService(cfg, c)
	insightsService := services.NewInsightsService(cfg, c)

	cloudinarySvc, err := services.NewCloudinaryService(cfg)
	if err != nil {
		logger.Warning("Cloudinary not configured, avatar upload disabled: %v", err)
	}

	handler.Init(stockService, insightsService, cloudinarySvc)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
