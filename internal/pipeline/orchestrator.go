package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KalminX/flash-card/internal/chunk"
	"github.com/KalminX/flash-card/internal/domain"
)

// DocumentResult is the ordered product of processing one document.
// Outcomes[i] corresponds to chunk i of the input text, regardless of
// completion order, and QuestionsCount reports the number of chunk results.
type DocumentResult struct {
	Outcomes       []domain.Outcome
	QuestionsCount int
}

// Orchestrator fans a document's chunks out to the Client and gathers the
// results back in input order.
type Orchestrator struct {
	client *Client
	logger *slog.Logger
}

// NewOrchestrator creates an Orchestrator around the given Client.
func NewOrchestrator(client *Client, logger *slog.Logger) (*Orchestrator, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	return &Orchestrator{client: client, logger: logger}, nil
}

// ProcessDocument splits text into chunks of at most maxChars characters,
// processes them all concurrently, and returns the sanitized outcomes in
// original chunk order. The only error it can return is the chunker's
// invalid-argument failure; per-chunk failures are isolated inside their
// own Outcome.
func (o *Orchestrator) ProcessDocument(ctx context.Context, text string, maxChars int) (*DocumentResult, error) {
	chunks, err := chunk.Split(text, maxChars)
	if err != nil {
		return nil, err
	}

	o.logger.InfoContext(ctx, "processing document",
		"text_length", len(text),
		"chunks", len(chunks))

	outcomes := make([]domain.Outcome, len(chunks))
	var wg sync.WaitGroup
	for i, ch := range chunks {
		wg.Add(1)
		go func(i int, ch domain.Chunk) {
			defer wg.Done()
			outcomes[i] = o.client.Process(ctx, ch)
		}(i, ch)
	}
	wg.Wait()

	failed := 0
	for i := range outcomes {
		outcomes[i].Cards = outcomes[i].Cards.Sanitize()
		if outcomes[i].Failed() {
			failed++
		}
	}

	o.logger.InfoContext(ctx, "document processed",
		"chunks", len(outcomes),
		"failed", failed)

	return &DocumentResult{
		Outcomes:       outcomes,
		QuestionsCount: len(outcomes),
	}, nil
}
