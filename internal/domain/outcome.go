package domain

// OutcomeKind classifies how a chunk's result was obtained.
type OutcomeKind string

const (
	// OutcomeCacheHit means the result was served from the content cache
	// without a remote call.
	OutcomeCacheHit OutcomeKind = "cache-hit"

	// OutcomeFresh means the remote service was called and its reply parsed
	// successfully.
	OutcomeFresh OutcomeKind = "fresh"

	// OutcomeParseFailed means the remote call succeeded but no well-formed
	// fenced JSON block could be recovered from the reply.
	OutcomeParseFailed OutcomeKind = "parse-failed"

	// OutcomeTransportError means the remote call itself failed: a network
	// error, a timeout, or a non-2xx response.
	OutcomeTransportError OutcomeKind = "transport-error"
)

// Error tokens rendered in place of flashcards for failed chunks, so the
// caller receives partial results rather than a failed batch.
const (
	// ErrorTokenSummarize marks a chunk whose remote call returned a
	// non-success status.
	ErrorTokenSummarize = "[Error summarizing]"

	// ErrorTokenException marks a chunk whose remote call failed at the
	// transport level.
	ErrorTokenException = "[Exception occurred]"

	// ErrorTokenUnparsed marks a chunk whose reply held no usable JSON block.
	ErrorTokenUnparsed = "[No flashcards found]"
)

// Outcome is the per-chunk result of the pipeline. Failed chunks carry a
// string error token in Cards instead of a flashcard tree; Err retains the
// underlying error for logging and is never serialized.
type Outcome struct {
	Index int         `json:"-"`
	Kind  OutcomeKind `json:"kind"`
	Cards Value       `json:"cards"`
	Err   error       `json:"-"`
}

// Failed reports whether the outcome carries an error token instead of
// flashcards.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeParseFailed || o.Kind == OutcomeTransportError
}
