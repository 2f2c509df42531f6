package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/eventhub/internal/config"
	"github.com/joshua-takyi/eventhub/internal/connect"
	"github.com/joshua-takyi/eventhub/internal/container"
	"github.com/joshua-takyi/eventhub/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting EventHub web server", "environment", cfg.Environment, "api_url", cfg.APIURL)

	appCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	client := connect.NewHTTPClient(cfg.APITimeout)
	if err := connect.PingAPI(appCtx, client, cfg.APIURL); err != nil {
		// pages report the outage per request
		logger.Warn("EventHub API not reachable at startup", "error", err)
	}

	jwks, err := connect.ConnectJWKS(appCtx, cfg.JWKSURL, logger)
	if err != nil {
		logger.Error("Failed to load JWKS", "error", err)
		os.Exit(1)
	}
	if jwks == nil {
		logger.Info("JWKS_URL not set, token signatures are not verified")
	}

	// Initialize dependency container
	appContainer, err := container.NewContainer(cfg, logger, client, jwks)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}
	defer appContainer.Verifier.Close()

	// Setup routes
	router, err := routes.SetupRoutes(appContainer)
	if err != nil {
		logger.Error("Failed to setup routes", "error", err)
		os.Exit(1)
	}

	appContainer.Scheduler.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Wait for a running cleanup job, if any
	<-appContainer.Scheduler.Stop().Done()
	stopBackground()

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel, cfg.IsProduction())}

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string, production bool) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if production {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
