package main

import (
	"fmt"
	"log/slog"

	"github.com/KalminX/flash-card/internal/cache"
	"github.com/KalminX/flash-card/internal/config"
	"github.com/KalminX/flash-card/internal/pipeline"
	"github.com/KalminX/flash-card/internal/platform/gemini"
	"github.com/KalminX/flash-card/internal/task"
	"github.com/KalminX/flash-card/internal/upload"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	cache   *cache.Cache
	uploads *upload.Store

	generator    *gemini.Generator
	orchestrator *pipeline.Orchestrator

	cleanupRunner *task.CleanupRunner
}

// newApplication creates an application instance with all dependencies
// initialized. Construction order follows the dependency graph: storage
// first, then the generation client, then the orchestration layer on top.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	contentCache, err := cache.Load(cfg.Cache.FilePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcard cache: %w", err)
	}

	uploads, err := upload.NewStore(cfg.Cleanup.UploadDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload store: %w", err)
	}

	generator, err := gemini.NewGenerator(logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	client, err := pipeline.NewClient(
		contentCache,
		generator,
		cfg.LLM.MaxConcurrentRequests,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline client: %w", err)
	}

	orchestrator, err := pipeline.NewOrchestrator(client, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	app := &application{
		config:       cfg,
		logger:       logger,
		cache:        contentCache,
		uploads:      uploads,
		generator:    generator,
		orchestrator: orchestrator,
	}

	if cfg.Cleanup.Enabled {
		runner, err := task.NewCleanupRunner(
			cfg.Cleanup.Interval(),
			uploads,
			contentCache,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create cleanup runner: %w", err)
		}
		app.cleanupRunner = runner
	}

	return app, nil
}

// startBackgroundTasks launches long-running workers owned by the
// application. Safe to call when cleanup is disabled.
func (app *application) startBackgroundTasks() {
	if app.cleanupRunner == nil {
		return
	}
	app.cleanupRunner.Start()
	app.logger.Info("cleanup runner started",
		"interval", app.config.Cleanup.Interval().String(),
		"upload_dir", app.config.Cleanup.UploadDir)
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if app.cleanupRunner != nil {
		app.logger.Info("stopping cleanup runner")
		app.cleanupRunner.Stop()
	}
}
