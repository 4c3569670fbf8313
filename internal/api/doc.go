// Package api contains the HTTP handlers for the flashcard service. The
// handlers are thin: request decoding and validation live here, while all
// pipeline behavior lives in internal/pipeline.
package api
