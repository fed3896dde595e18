package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/backend/internal/adapters/cache"
	"github.com/retailpulse/backend/internal/adapters/database"
	"github.com/retailpulse/backend/internal/api/handlers"
	"github.com/retailpulse/backend/internal/api/routes"
	"github.com/retailpulse/backend/internal/application/services"
	"github.com/retailpulse/backend/internal/domain/repositories"
	"github.com/retailpulse/backend/internal/infrastructure/clients/mongodb"
	redisclient "github.com/retailpulse/backend/internal/infrastructure/clients/redis"
	"github.com/retailpulse/backend/internal/infrastructure/observability"
	"github.com/retailpulse/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("sales-api", cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database client
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, err := mongodb.NewClient(connectCtx, &cfg.Database)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize MongoDB client")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := mongoClient.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("error closing MongoDB client")
		}
	}()
	log.Info().Msg("MongoDB client initialized successfully")

	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure sales indexes")
	}

	// Initialize Redis client; the API works without caching if Redis is
	// unavailable.
	var redisClient *redisclient.Client
	if cfg.Redis.Enabled {
		redisClient, err = redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Msg("Redis client initialized successfully")
		}
	}

	// Initialize adapters
	baseSaleAdapter := database.NewSaleAdapter(mongoClient)

	var saleRepo repositories.SaleRepository
	if redisClient != nil {
		cacheProvider := cache.NewRedisAdapter(redisClient)
		saleRepo = database.NewCachedSaleAdapter(baseSaleAdapter, cacheProvider)
		log.Info().Msg("sale repository wrapped with caching layer")
	} else {
		saleRepo = baseSaleAdapter
		log.Info().Msg("sale repository running without cache")
	}

	// Initialize services and handlers
	salesService := services.NewSalesService(saleRepo)
	salesHandler := handlers.NewSalesHandler(salesService)

	// Set up router
	router := routes.NewRouter(salesHandler)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
