package upload_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalminX/flash-card/internal/upload"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestSaveAndRead(t *testing.T) {
	t.Parallel()

	store, err := upload.NewStore(filepath.Join(t.TempDir(), "uploads"), testLogger())
	require.NoError(t, err)

	id, err := store.Save(strings.NewReader("document body"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	data, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "document body", string(data))
}

func TestReadUnknownID(t *testing.T) {
	t.Parallel()

	store, err := upload.NewStore(filepath.Join(t.TempDir(), "uploads"), testLogger())
	require.NoError(t, err)

	_, err = store.Read("0b8a96ee-70c5-86cf-0a38-b9e325fc55ad")
	assert.ErrorIs(t, err, upload.ErrNotFound)
}

func TestReadRejectsNonUUIDIDs(t *testing.T) {
	t.Parallel()

	store, err := upload.NewStore(filepath.Join(t.TempDir(), "uploads"), testLogger())
	require.NoError(t, err)

	for _, id := range []string{"../secrets", "..", "notes.txt", ""} {
		_, err := store.Read(id)
		assert.ErrorIs(t, err, upload.ErrNotFound, "id %q", id)
	}
}

func TestClearRemovesAllUploads(t *testing.T) {
	t.Parallel()

	store, err := upload.NewStore(filepath.Join(t.TempDir(), "uploads"), testLogger())
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.Save(strings.NewReader("body"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, store.Clear())

	for _, id := range ids {
		_, err := store.Read(id)
		assert.ErrorIs(t, err, upload.ErrNotFound)
	}

	// Clearing an already-empty directory is fine.
	assert.NoError(t, store.Clear())
}
