package gemini

import "errors"

// ErrEmptyChunkText is returned when GenerateCards is called with an empty
// chunk.
var ErrEmptyChunkText = errors.New("chunk text cannot be empty")
