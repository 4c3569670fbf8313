package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/KalminX/flash-card/internal/domain"
)

// Entry is a cached result for one content digest. Failed marks entries
// read back from a file that recorded a parse failure; the pipeline treats
// those as misses so the chunk can be retried.
type Entry struct {
	Cards  domain.Value
	Failed bool
}

// failedSentinel is the value written for Failed entries in the backing
// file. Any non-array value read from the file is treated the same way.
const failedSentinel = "[unparseable]"

// Cache is a process-wide mapping from content digests to flashcard
// results, loaded fully into memory at startup and rewritten to its backing
// file after every update. All operations are safe for concurrent use; the
// file rewrite is serialized so two writers cannot interleave.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
	logger  *slog.Logger
}

// Digest computes the cache key for a chunk's text: the lowercase
// hexadecimal sha256 of the exact character content. Two chunks with
// identical text always map to the same digest regardless of document or
// position.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Load reads the cache from path. A missing file yields an empty cache; a
// file that cannot be parsed is a fatal configuration error rather than a
// silent empty start.
func Load(path string, logger *slog.Logger) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]Entry),
		logger:  logger,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("no cache file found, starting empty", "path", path)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptCacheFile, path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorruptCacheFile, path, err)
	}

	for digest, msg := range raw {
		var v domain.Value
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", ErrCorruptCacheFile, digest, err)
		}
		if v.Kind() == domain.KindArray {
			c.entries[digest] = Entry{Cards: v}
		} else {
			c.entries[digest] = Entry{Failed: true}
		}
	}

	logger.Info("cache loaded", "path", path, "entries", len(c.entries))
	return c, nil
}

// Get looks up the entry for a digest. It has no side effects.
func (c *Cache) Get(digest string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[digest]
	return entry, ok
}

// Put stores the entry in memory and rewrites the whole backing file.
// If the rewrite fails the in-memory update remains visible and an
// ErrPersistFailed is returned; callers log it and carry on.
func (c *Cache) Put(digest string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[digest] = entry
	return c.persistLocked()
}

// Clear resets the cache to empty and rewrites the backing file to {}.
// It is invoked by the periodic cleanup job, never by the pipeline itself.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	return c.persistLocked()
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// persistLocked rewrites the backing file from the in-memory mapping.
// Callers must hold c.mu. The file is written to a temp file in the same
// directory and renamed into place so a crash mid-write cannot leave a
// truncated cache behind.
func (c *Cache) persistLocked() error {
	raw := make(map[string]json.RawMessage, len(c.entries))
	for digest, entry := range c.entries {
		var (
			msg []byte
			err error
		)
		if entry.Failed {
			msg, err = json.Marshal(failedSentinel)
		} else {
			msg, err = json.Marshal(entry.Cards)
		}
		if err != nil {
			return fmt.Errorf("%w: encoding entry %s: %v", ErrPersistFailed, digest, err)
		}
		raw[digest] = msg
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding cache: %v", ErrPersistFailed, err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrPersistFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrPersistFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrPersistFailed, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", ErrPersistFailed, c.path, err)
	}

	c.logger.Debug("cache persisted", "path", c.path, "entries", len(c.entries))
	return nil
}
