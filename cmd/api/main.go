// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/infrastructure/messaging/kafka"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	if err := postgres.NewMigration(db.GetDB(), log).Run(startupCtx); err != nil {
		cancelStartup()
		log.Fatalf("Database migration failed: %v", err)
	}
	cancelStartup()

	publisher := kafka.NewPublisher(cfg, log)
	defer publisher.Close()

	jwtManager := auth.NewJWTManager(cfg)
	cartService := cart.NewService(cart.NewRedisStore(redisClient.GetClient(), cfg.Redis.CartTTL), log)

	server, err := http.NewServer(cfg, http.Dependencies{
		Handlers: &routes.Handlers{
			Product: handlers.NewProductHandler(product.NewService(db.GetDB(), log), log),
			Review:  handlers.NewReviewHandler(product.NewReviewService(db.GetDB(), log), log),
			Cart:    handlers.NewCartHandler(cartService, log),
			Order:   handlers.NewOrderHandler(order.NewService(db.GetDB(), cfg, cartService, publisher, log), pdf.NewService(cfg), log),
			Auth:    handlers.NewAuthHandler(jwtManager, log),
		},
		Tokens:       jwtManager,
		RateCounter:  middleware.NewRedisRateCounter(redisClient.GetClient()),
		HealthChecks: map[string]http.HealthChecker{
			"database": db,
			"redis":    redisClient,
		},
	}, log)
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}

	log.Info("✅ All systems operational!")

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("👋 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Info("✅ Server shutdown completed")
}
