package cache

import "errors"

// Common errors returned by the cache.
var (
	// ErrCorruptCacheFile is returned by Load when the backing file exists
	// but does not hold a valid cache mapping. This is a configuration
	// error and is fatal at startup.
	ErrCorruptCacheFile = errors.New("cache file is corrupt")

	// ErrPersistFailed is returned when rewriting the backing file fails.
	// The in-memory update has still been applied.
	ErrPersistFailed = errors.New("failed to persist cache file")
)
