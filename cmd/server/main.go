// Package main implements the entry point for the flash-card server
// which turns uploaded study material into LLM-generated flashcards.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KalminX/flash-card/internal/config"
	"github.com/KalminX/flash-card/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application together, and serves HTTP
// until a shutdown signal arrives. Kept separate from main so that all exit
// paths flow through a single error return.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"chunk_size", cfg.Pipeline.ChunkSize,
		"cache_file", cfg.Cache.FilePath)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	app.startBackgroundTasks()

	router := app.setupRouter()

	if err := app.serve(context.Background(), router); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		return err
	}

	return nil
}
