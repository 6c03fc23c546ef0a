package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"urban-luxury/internal/auth"
	"urban-luxury/internal/config"
	"urban-luxury/internal/database"
	"urban-luxury/internal/events"
	"urban-luxury/internal/handler"
	"urban-luxury/internal/repository"
	"urban-luxury/internal/router"
	"urban-luxury/internal/service"
	"urban-luxury/internal/storage"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func run(parent context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting urban-luxury API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	broker := events.NewBroker(logger)
	var publisher events.Publisher = broker

	if cfg.Redis.URL != "" {
		client, err := events.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to connect to redis, change notifications stay local to this instance")
		} else {
			defer client.Close()
			redisPublisher := events.NewRedisPublisher(client, cfg.Redis.Channel, broker, logger)
			publisher = redisPublisher
			go func() {
				if err := redisPublisher.Run(ctx); err != nil {
					logger.Error().Err(err).Msg("redis event relay stopped")
				}
			}()
		}
	}

	authenticator, err := auth.NewAuthenticator(cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize authentication: %w", err)
	}

	// Initialize repositories
	brandRepo := repository.NewBrandRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize services
	brandService := service.NewBrandService(brandRepo, store, publisher, cfg.Server.PublicURL, logger)
	productService := service.NewProductService(productRepo, store, publisher, cfg.Server.PublicURL, logger)
	orderService := service.NewOrderService(orderRepo, publisher, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(authenticator, logger),
		Brand:   handler.NewBrandHandler(brandService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Order:   handler.NewOrderHandler(orderService, logger),
		Upload:  handler.NewUploadHandler(store, logger),
		Event:   handler.NewEventHandler(broker, logger),
		Health:  handler.NewHealthHandler(pool, logger),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Verifier:       authenticator,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	// Event streams only end when their request context does.
	server.RegisterOnShutdown(cancel)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("public_url", cfg.Server.PublicURL).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newStore picks S3 when enabled, falling back to the local upload directory.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Store, error) {
	if cfg.S3.Enabled {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err == nil {
			return s3Store, nil
		}
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system")
	} else {
		logger.Info().Str("dir", cfg.Upload.Dir).Msg("using local file system for uploads (S3 disabled)")
	}

	return storage.NewLocalStore(cfg.Upload.Dir, logger)
}
