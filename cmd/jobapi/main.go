// cmd/jobapi/main.go
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	http_api "jobboard/internal/api/http"
	"jobboard/internal/config"
	"jobboard/internal/infra/sqlite"
	"jobboard/internal/tracing"
	"jobboard/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	level, _ := cfg.SlogLevel()

	// 2. Initialize logger and tracer
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var traceOut io.Writer
	if cfg.TraceStdout {
		traceOut = os.Stdout
	}
	tracerShutdown, err := tracing.InitTracer("jobboard-api", traceOut, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 3. Create root context and graceful shutdown
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupGracefulShutdown(cancel, logger)

	// 4. Open storage
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	logger.Info("database ready", "path", cfg.DBPath)

	// 5. Instantiate components
	jobRepo := sqlite.NewJobRepository(db, logger)
	jobService := usecase.NewJobService(jobRepo, logger)
	jobHandler := http_api.NewJobHandler(jobService, logger)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           http_api.NewRouter(jobHandler, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting job API server", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	// 6. Block until shutdown
	<-rootCtx.Done()
	logger.Info("shutting down job API gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("job API shut down")
}

func setupGracefulShutdown(cancel context.CancelFunc, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, initiating graceful shutdown", "signal", sig.String())
		cancel()
	}()
}
