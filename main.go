package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/common/logger"
	commonmw "canteen-backend/common/middleware"
	"canteen-backend/controllers"
	"canteen-backend/database"
	"canteen-backend/kafka"
	"canteen-backend/models"
	awspkg "canteen-backend/pkg/aws"
	"canteen-backend/repository"
	"canteen-backend/routes"
	"canteen-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	logger.Initialize(getEnv("APP_ENV", "development"))
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- Database ---
	db, err := database.Connect(database.DBConfig{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	})
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		zap.L().Fatal("Migration failed", zap.Error(err))
	}
	if err := database.SeedProducts(db); err != nil {
		zap.L().Warn("Product seeding failed", zap.Error(err))
	}

	// --- Redis ---
	redisClient := database.NewRedisClient(cfg.RedisURL)

	// --- Kafka (optional) ---
	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic)
	}

	// --- SNS (optional, best-effort) ---
	var snsClient awspkg.SNSPublisher
	if cfg.SNSTopicARN != "" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			snsClient = awspkg.NewSNSClient(awsCfg)
		} else {
			zap.L().Warn("Failed to load AWS config, SNS disabled", zap.Error(err))
		}
	}

	// --- Dependency injection ---
	productRepo := repository.NewGormProductRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	idemStore := repository.NewRedisIdempotencyStore(redisClient)

	productService := services.NewProductService(productRepo, services.NewCacheManager(redisClient))
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, idemStore, producer, snsClient, cfg.SNSTopicARN, cfg.StrictStatusFlow)

	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)

	// --- HTTP server & middleware ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(commonmw.RequestLogger(zap.L()))
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORSMiddleware())
	r.Use(commonmw.RateLimitMiddleware())
	r.Use(apperrors.ErrorMiddleware())

	// Request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, routes.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		AdminAnyUser: cfg.AdminAnyUser,
	}, productController, cartController, orderController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Canteen backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down canteen backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			zap.L().Error("Failed to close Kafka producer", zap.Error(err))
		}
	}
	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Canteen backend stopped gracefully")
}
