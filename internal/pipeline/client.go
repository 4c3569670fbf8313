package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/KalminX/flash-card/internal/cache"
	"github.com/KalminX/flash-card/internal/domain"
	"github.com/KalminX/flash-card/internal/generation"
)

// Common errors returned by the pipeline constructors
var (
	ErrNilCache     = errors.New("cache cannot be nil")
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
	ErrNilClient    = errors.New("client cannot be nil")
)

// Client processes individual chunks. It consults the content cache first
// and otherwise calls the remote generator while holding one of a fixed
// number of permits shared across all in-flight chunks of the whole batch.
type Client struct {
	cache     *cache.Cache
	generator generation.Generator
	sem       *semaphore.Weighted
	flights   singleflight.Group
	logger    *slog.Logger
}

// NewClient creates a Client with at most maxInFlight concurrent remote
// calls. A maxInFlight of zero or less falls back to 3, the default permit
// pool size.
func NewClient(
	contentCache *cache.Cache,
	generator generation.Generator,
	maxInFlight int,
	logger *slog.Logger,
) (*Client, error) {
	if contentCache == nil {
		return nil, ErrNilCache
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if maxInFlight <= 0 {
		logger.Warn("invalid max in-flight value, using default",
			"specified", maxInFlight,
			"default", 3)
		maxInFlight = 3
	}

	return &Client{
		cache:     contentCache,
		generator: generator,
		sem:       semaphore.NewWeighted(int64(maxInFlight)),
		logger:    logger,
	}, nil
}

// generated is the index-independent part of an outcome, shared between
// chunks whose text collides in flight.
type generated struct {
	kind  domain.OutcomeKind
	cards domain.Value
	err   error
}

// Process computes one chunk's outcome. It never returns an error: remote
// and parse failures are recovered as sentinel outcomes so one chunk can
// never take down a batch.
func (c *Client) Process(ctx context.Context, chunk domain.Chunk) domain.Outcome {
	digest := cache.Digest(chunk.Text)

	if entry, ok := c.cache.Get(digest); ok && !entry.Failed {
		c.logger.DebugContext(ctx, "cache hit", "digest", digest, "chunk", chunk.Index)
		return domain.Outcome{
			Index: chunk.Index,
			Kind:  domain.OutcomeCacheHit,
			Cards: entry.Cards,
		}
	}

	// Chunks with identical text share a single remote call; the
	// singleflight group collapses concurrent misses on the same digest.
	shared, _, _ := c.flights.Do(digest, func() (interface{}, error) {
		return c.generate(ctx, digest, chunk.Text), nil
	})
	result := shared.(*generated)

	return domain.Outcome{
		Index: chunk.Index,
		Kind:  result.kind,
		Cards: result.cards,
		Err:   result.err,
	}
}

// generate performs the cache-miss path: acquire a permit, call the remote
// service, classify the result, and cache it on success. The permit is
// released on every exit path.
func (c *Client) generate(ctx context.Context, digest, text string) *generated {
	// A flight that finished while this one queued may have already filled
	// the cache.
	if entry, ok := c.cache.Get(digest); ok && !entry.Failed {
		return &generated{kind: domain.OutcomeCacheHit, cards: entry.Cards}
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.logger.WarnContext(ctx, "abandoned waiting for permit", "digest", digest, "error", err)
		return &generated{
			kind:  domain.OutcomeTransportError,
			cards: domain.String(domain.ErrorTokenException),
			err:   err,
		}
	}
	defer c.sem.Release(1)

	c.logger.DebugContext(ctx, "cache miss, calling remote service", "digest", digest)

	cards, err := c.generator.GenerateCards(ctx, text)
	switch {
	case err == nil:
		if perr := c.cache.Put(digest, cache.Entry{Cards: cards}); perr != nil {
			// The in-memory entry is still live; only the file write failed.
			c.logger.WarnContext(ctx, "cache write-through failed",
				"digest", digest,
				"error", perr)
		}
		return &generated{kind: domain.OutcomeFresh, cards: cards}

	case errors.Is(err, generation.ErrInvalidResponse):
		// Not cached, so a future batch can retry the chunk.
		c.logger.WarnContext(ctx, "reply held no usable flashcards",
			"digest", digest,
			"error", err)
		return &generated{
			kind:  domain.OutcomeParseFailed,
			cards: domain.String(domain.ErrorTokenUnparsed),
			err:   err,
		}

	case errors.Is(err, generation.ErrRemoteStatus):
		c.logger.ErrorContext(ctx, "remote service rejected chunk",
			"digest", digest,
			"error", err)
		return &generated{
			kind:  domain.OutcomeTransportError,
			cards: domain.String(domain.ErrorTokenSummarize),
			err:   err,
		}

	default:
		c.logger.ErrorContext(ctx, "remote call failed",
			"digest", digest,
			"error", err)
		return &generated{
			kind:  domain.OutcomeTransportError,
			cards: domain.String(domain.ErrorTokenException),
			err:   err,
		}
	}
}
