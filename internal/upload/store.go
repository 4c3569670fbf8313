package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no upload exists for the given id.
var ErrNotFound = errors.New("upload not found")

// Store keeps uploaded documents as files under a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the upload directory if needed and returns a Store over
// it.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save writes the document content to a new uuid-named file and returns the
// upload id.
func (s *Store) Save(r io.Reader) (string, error) {
	id := uuid.NewString()
	f, err := os.Create(filepath.Join(s.dir, id))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("closing upload file: %w", err)
	}

	s.logger.Debug("upload stored", "id", id)
	return id, nil
}

// Read returns the content of a stored upload. The id must be a valid uuid,
// which also rules out path traversal.
func (s *Store) Read(id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return data, nil
}

// Clear deletes every regular file in the upload directory. Deletion
// failures are logged and skipped so one stuck file cannot wedge the
// cleanup job.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading upload directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to delete upload", "name", entry.Name(), "error", err)
			continue
		}
		removed++
	}

	s.logger.Info("upload directory cleared", "removed", removed)
	return nil
}

// Dir returns the upload directory path.
func (s *Store) Dir() string {
	return s.dir
}
