package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldscout/meridian/internal/config"
	"github.com/fieldscout/meridian/internal/geocoding"
	"github.com/fieldscout/meridian/internal/metrics"
	"github.com/fieldscout/meridian/internal/repository"
	"github.com/fieldscout/meridian/internal/server"
	"github.com/fieldscout/meridian/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb, logger)

	// Create geocoding provider using factory pattern based on configuration.
	// This allows runtime selection between different vendors (Google, OpenCage, Nominatim).
	providerConfig := geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	}

	geoProvider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	// The resolver wraps the vendor with caching, request collapsing and retry.
	resolver := geocoding.NewResolver(logger, geoProvider, cfg.ProviderType, appMetrics, cfg.CacheSize)

	// Init the matching engine using the resolver and the catalogs.
	engine := service.NewMatchingService(logger, resolver, repo, repo, appMetrics)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the API server in a goroutine to allow main to listen for signals.
	httpServer := newServer(logger, engine, dtb, reg, cfg.Port)
	go func() {
		logger.InfoContext(ctx, "Starting API server", "port", cfg.Port)
		if errServe := httpServer.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", errServe)
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownTimeout := 5 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "Failed to shut down API server cleanly", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// newServer builds the HTTP server carrying the matching API, the health
// check and the Prometheus metrics endpoint.
func newServer(
	logger *slog.Logger,
	engine server.Engine,
	db server.Pinger,
	reg *prometheus.Registry,
	port int,
) *http.Server {
	mux := http.NewServeMux()

	api := server.New(logger, engine, db)
	api.Register(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
