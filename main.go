package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/farmlink-api/aiflows"
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/events"
	"github.com/Kariqs/farmlink-api/initializers"
	"github.com/Kariqs/farmlink-api/metrics"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/Kariqs/farmlink-api/routes"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/Kariqs/farmlink-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	initializers.LoadEnv()
	cfg := initializers.LoadConfig()
	initializers.InitLogger(cfg)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()
	shutdownTracing, err := initializers.InitTracing(cfg)
	if err != nil {
		slog.Error("Failed to start tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	products := stores.NewProductStore(db)
	if cfg.SeedCatalog {
		if seeded, err := products.SeedDefaults(ctx); err != nil {
			slog.Error("Failed to seed catalog", "error", err)
		} else if seeded > 0 {
			slog.Info("Seeded default catalog", "products", seeded)
		}
	}
	carts := stores.NewCartStore(db)
	orders := stores.NewOrderStore(db)
	notifications := stores.NewNotificationStore(db)
	ratings := stores.NewRatingStore(db)
	users := stores.NewUserStore(db)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
	}
	defer publisher.Close()

	var uploader utils.ImageUploader
	if cfg.S3Bucket != "" {
		s3Uploader, err := utils.NewS3Uploader(ctx, cfg.S3Bucket)
		if err != nil {
			slog.Warn("Image uploads disabled", "error", err)
		} else {
			uploader = s3Uploader
		}
	}

	var cache aiflows.Cache = aiflows.NewMemoryCache()
	if cfg.RedisURL != "" {
		redisCache, err := aiflows.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("Redis unavailable, caching AI answers in memory", "error", err)
		} else {
			cache = redisCache
			defer redisCache.Close()
		}
	}
	runner := aiflows.NewRunner(aiflows.NewGeminiClient(aiflows.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.AITimeout,
	}), cache, cfg.AICacheTTL)

	mailer := &utils.Mailer{
		From:     cfg.FromEmail,
		Password: cfg.FromEmailPassword,
		SMTPHost: cfg.FromEmailSMTP,
		Address:  cfg.SMTPAddress,
	}

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(), metrics.Middleware(), otelgin.Middleware("farmlink-api"))
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	orderController := controllers.NewOrderController(orders, users, publisher, mailer)
	routes.Register(server, routes.Handlers{
		Auth:          controllers.NewAuthController(users, cfg.JWTSecret, cfg.TokenTTL),
		Products:      controllers.NewProductController(products, ratings, uploader),
		Cart:          controllers.NewCartController(carts),
		Orders:        orderController,
		Ratings:       controllers.NewRatingController(ratings),
		Notifications: controllers.NewNotificationController(notifications),
		AI:            controllers.NewAIController(runner, notifications),
	}, routes.Options{JWTSecret: cfg.JWTSecret, AIRateLimit: cfg.AIRateLimit})

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: server}
	go func() {
		slog.Info("Starting FarmLink API", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	slog.Info("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 15*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	orderController.Wait()
}
