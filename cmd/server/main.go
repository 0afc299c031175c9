package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aashari/go-ai-proxy-server/docs"
	"github.com/aashari/go-ai-proxy-server/internal/app"
	"github.com/aashari/go-ai-proxy-server/internal/config"
	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

// @title           AI Proxy Server
// @version         1.0
// @description     A small relay that forwards prompts to OpenAI, DeepSeek, Gemini and remove.bg, keeping vendor credentials on the server.

// @contact.name   API Support
// @contact.url    https://github.com/aashari/go-ai-proxy-server

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

const shutdownTimeout = 30 * time.Second

func main() {
	if err := config.LoadEnvFile(); err != nil {
		_, _ = os.Stderr.WriteString("FATAL: Failed to load .env file: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("FATAL: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize structured logging
	if err := logger.Init(logger.Config{
		Level:       logger.ParseLevel(cfg.Logging.Level),
		Format:      cfg.Logging.Format,
		Output:      cfg.Logging.Output,
		TimeFormat:  time.RFC3339,
		ServiceName: cfg.Service.Name,
		Environment: cfg.Service.Environment,
	}); err != nil {
		// Can't use logger here as it failed to initialize
		_, _ = os.Stderr.WriteString("FATAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Info("Configuration loaded",
		"component", logger.ComponentNames.Config,
		"log_level", cfg.Logging.Level,
		"max_request_body_size", cfg.Server.MaxRequestBodySize,
		"usage_logging", cfg.Database.Enabled())

	application, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize application", "component", logger.ComponentNames.Server, "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      application.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			"component", logger.ComponentNames.Server,
			"address", srv.Addr,
			"version", cfg.Service.Version,
			"environment", cfg.Service.Environment,
			"pprof_enabled", cfg.Server.EnablePprof)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		logger.Info("Shutting down server", "component", logger.ComponentNames.Server, "signal", sig.String())
	case err := <-serverErr:
		logger.Error("Server failed", "component", logger.ComponentNames.Server, "error", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "component", logger.ComponentNames.Server, "error", err)
		exitCode = 1
	}
	if err := application.Close(ctx); err != nil {
		logger.Warn("Failed to release resources", "component", logger.ComponentNames.Server, "error", err)
	}

	logger.Info("Server exited", "component", logger.ComponentNames.Server)
	os.Exit(exitCode)
}
