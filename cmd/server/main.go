package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sseol-server/internal/cache"
	"sseol-server/internal/config"
	"sseol-server/internal/describer"
	"sseol-server/internal/handler"
	"sseol-server/internal/logger"
	"sseol-server/internal/middleware"
	"sseol-server/internal/oracle"
	"sseol-server/internal/placement"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// --- Oracle ---
	pricing, err := oracle.LoadPricing(cfg.PricingFile)
	if err != nil {
		zap.L().Fatal("Failed to load pricing table", zap.Error(err))
	}

	placementOracle, err := oracle.New(ctx, cfg, pricing, log)
	if err != nil {
		zap.L().Fatal("Failed to create placement oracle", zap.Error(err))
	}
	zap.L().Info("Placement oracle configured",
		zap.String("provider", cfg.OracleProvider),
		zap.String("model", placementOracle.Model()),
	)

	imageDescriber, err := newImageDescriber(placementOracle, cfg.DescriberModel)
	if err != nil {
		zap.L().Fatal("Failed to create image describer", zap.Error(err))
	}

	// --- Descriptor cache (optional) ---
	var descriptorCache cache.DescriptorCache = cache.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, 5, 2*time.Second, log)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		descriptorCache = cache.NewRedisDescriptorCache(redisClient, cfg.DescriptorCacheTTL, log)
		zap.L().Info("Descriptor cache enabled", zap.Duration("ttl", cfg.DescriptorCacheTTL))
	} else {
		zap.L().Info("REDIS_ADDR not set, descriptor cache disabled")
	}

	// --- Dependency Injection ---
	placementService := placement.NewService(placementOracle, placement.Options{
		MinOutputTokens: cfg.OracleMinOutputTokens,
		MaxOutputTokens: cfg.OracleMaxOutputTokens,
	}, log)
	describerPool := describer.NewPool(imageDescriber, describer.PoolOptions{
		Concurrency:       cfg.DescriberConcurrency,
		RequestsPerSecond: cfg.DescriberRPS,
		Cache:             descriptorCache,
	}, log)
	apiHandler := handler.NewHandler(placementService, describerPool, cfg.MaxUploadBytes, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	if allowedOrigins := cfg.GetAllowedOrigins(); len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "HEAD", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	apiHandler.RegisterRoutes(router)

	// Prometheus после регистрации роутов
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.OracleTimeout + 30*time.Second, // ответ модели может идти долго
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// newImageDescriber переиспользует клиент модели размещения для описания изображений.
func newImageDescriber(o oracle.PlacementOracle, model string) (describer.ImageDescriber, error) {
	switch c := o.(type) {
	case *oracle.GeminiOracle:
		return describer.NewGeminiDescriber(c.Client(), model), nil
	case *oracle.OpenAIOracle:
		return describer.NewOpenAIDescriber(c.Client(), model), nil
	case *oracle.OllamaOracle:
		return describer.NewOllamaDescriber(c.Client(), model), nil
	default:
		return nil, fmt.Errorf("no image describer for oracle %T", o)
	}
}
