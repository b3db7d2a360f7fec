package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NotoMD-dev/notomed-deid/internal/api/router"
	appconfig "github.com/NotoMD-dev/notomed-deid/internal/config"
	"github.com/NotoMD-dev/notomed-deid/internal/http/handlers"
	"github.com/NotoMD-dev/notomed-deid/internal/observability/metrics"
	"github.com/NotoMD-dev/notomed-deid/pkg/logging"
)

func main() {
	// Load .env if present (development convenience; no-op elsewhere)
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting notomed-deid API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	redactionMetrics := metrics.NewRedactionMetrics(registry)

	deidHandler := handlers.NewDeidHandler(logger, redactionMetrics, cfg.MaxNoteBytes, cfg.MaxBatchNotes, cfg.FullPipeline)

	r := router.New(&router.Config{
		Logger:             logger,
		DeidHandler:        deidHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
