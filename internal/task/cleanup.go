package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KalminX/flash-card/internal/cache"
	"github.com/KalminX/flash-card/internal/upload"
)

// Common errors returned by the cleanup runner
var (
	ErrNilUploadStore = errors.New("upload store cannot be nil")
	ErrNilCache       = errors.New("cache cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrInvalidTick    = errors.New("cleanup interval must be positive")
)

// CleanupRunner periodically clears the upload directory and the content
// cache. It owns a single background goroutine with a Start/Stop lifecycle.
type CleanupRunner struct {
	interval   time.Duration
	uploads    *upload.Store
	cache      *cache.Cache
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewCleanupRunner creates a runner that fires every interval once started.
func NewCleanupRunner(
	interval time.Duration,
	uploads *upload.Store,
	contentCache *cache.Cache,
	logger *slog.Logger,
) (*CleanupRunner, error) {
	if uploads == nil {
		return nil, ErrNilUploadStore
	}
	if contentCache == nil {
		return nil, ErrNilCache
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if interval <= 0 {
		return nil, ErrInvalidTick
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &CleanupRunner{
		interval:   interval,
		uploads:    uploads,
		cache:      contentCache,
		logger:     logger,
		ctx:        ctx,
		cancelFunc: cancel,
	}, nil
}

// Start launches the background goroutine. The first cleanup happens one
// full interval after Start, not immediately.
func (r *CleanupRunner) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.logger.Info("cleanup runner started", "interval", r.interval.String())
		for {
			select {
			case <-ticker.C:
				r.RunOnce(r.ctx)
			case <-r.ctx.Done():
				r.logger.Info("cleanup runner stopped")
				return
			}
		}
	}()
}

// Stop shuts the runner down and waits for the background goroutine to
// exit.
func (r *CleanupRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// RunOnce performs a single cleanup pass. It is exported so operators can
// trigger the same reset out of band that the timer performs on schedule.
func (r *CleanupRunner) RunOnce(ctx context.Context) {
	r.logger.InfoContext(ctx, "running cleanup task")

	if err := r.uploads.Clear(); err != nil {
		r.logger.ErrorContext(ctx, "failed to clear upload directory", "error", err)
	}
	if err := r.cache.Clear(); err != nil {
		r.logger.ErrorContext(ctx, "failed to clear cache file", "error", err)
	}

	r.logger.InfoContext(ctx, "cleanup task done")
}
