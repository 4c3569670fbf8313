package generation

import (
	"context"

	"github.com/KalminX/flash-card/internal/domain"
)

// Generator defines the interface for generating flashcards from a chunk of
// text. This interface serves as the boundary between the pipeline core and
// external AI/LLM services.
type Generator interface {
	// GenerateCards sends one chunk of text to the remote service and
	// returns the flashcard list recovered from its reply.
	//
	// Failures are classified by the sentinel errors in this package:
	// ErrRemoteStatus for a non-success HTTP status, ErrTransportFailure
	// for network-level failures and timeouts, and ErrInvalidResponse when
	// the reply held no parseable fenced JSON block.
	GenerateCards(ctx context.Context, chunkText string) (domain.Value, error)
}
