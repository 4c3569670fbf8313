// Package cache provides the content-addressed flashcard result cache.
// Results are keyed by a sha256 digest of the chunk's exact text, held fully
// in memory, and written through to a single JSON file on every update.
package cache
