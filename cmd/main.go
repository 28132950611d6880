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

	"github.com/UnknownOlympus/cellsim/internal/api"
	"github.com/UnknownOlympus/cellsim/internal/config"
	"github.com/UnknownOlympus/cellsim/internal/geocoding"
	"github.com/UnknownOlympus/cellsim/internal/metrics"
	"github.com/UnknownOlympus/cellsim/internal/observability"
	"github.com/UnknownOlympus/cellsim/internal/repository"
	"github.com/UnknownOlympus/cellsim/internal/service"
	"github.com/UnknownOlympus/cellsim/internal/simulation"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

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

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "cellsim",
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)

	engine := simulation.NewEngine(cfg.Radio, cfg.Workers)
	radio := engine.Environment()
	logger.InfoContext(ctx, "Simulation engine ready",
		"frequency_mhz", radio.FrequencyMHz,
		"bandwidth_hz", radio.BandwidthHz,
		"devices", radio.DeviceCount,
		"class_shares", radio.ClassDistribution.String(),
		"workers", cfg.Workers,
	)
	simService := service.NewSimulationService(logger, engine, appMetrics, cfg.Seed)

	// The site catalogue is optional, without a database only raw coordinates are served.
	var ping api.PingFunc
	if cfg.Database.Enabled() {
		dtb, dbErr := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if dbErr != nil {
			log.Fatalf("Failed to connect to DB: %v", dbErr)
		}
		defer dtb.Close()

		repo := repository.NewRepository(dtb, logger)
		if err = repo.Migrate(ctx); err != nil {
			log.Fatalf("Failed to prepare site catalogue: %v", err)
		}
		simService.WithSites(repo)
		ping = dtb.Ping
	}

	// Create geocoding provider using factory pattern based on configuration.
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Type),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	if geoProvider != nil {
		simService.WithGeocoder(geoProvider, cfg.Geocoder.Type)
		logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.Type)
	}

	router := api.NewRouter(api.NewHandler(logger, simService, ping), reg)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handlers.LoggingHandler(os.Stdout, api.WithCORS(router, cfg.CORSOrigins)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start the server in a goroutine to allow main to listen for signals.
	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port, "workers", cfg.Workers)
		if srvErr := server.ListenAndServe(); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", srvErr)
			stop()
		}
	}()

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
