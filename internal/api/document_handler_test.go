package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalminX/flash-card/internal/api"
	"github.com/KalminX/flash-card/internal/chunk"
	"github.com/KalminX/flash-card/internal/domain"
	"github.com/KalminX/flash-card/internal/pipeline"
	"github.com/KalminX/flash-card/internal/upload"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// stubProcessor returns a fresh outcome per chunk without any remote calls.
type stubProcessor struct {
	lastText     string
	lastMaxChars int
}

func (s *stubProcessor) ProcessDocument(ctx context.Context, text string, maxChars int) (*pipeline.DocumentResult, error) {
	s.lastText = text
	s.lastMaxChars = maxChars

	chunks, err := chunk.Split(text, maxChars)
	if err != nil {
		return nil, err
	}
	outcomes := make([]domain.Outcome, len(chunks))
	for i := range chunks {
		var cards domain.Value
		if err := json.Unmarshal([]byte(`[{"1":{"q":"Q","a":"A"}}]`), &cards); err != nil {
			return nil, err
		}
		outcomes[i] = domain.Outcome{Index: i, Kind: domain.OutcomeFresh, Cards: cards}
	}
	return &pipeline.DocumentResult{Outcomes: outcomes, QuestionsCount: len(outcomes)}, nil
}

func newHandler(t *testing.T) (*api.DocumentHandler, *stubProcessor, *upload.Store) {
	t.Helper()

	store, err := upload.NewStore(filepath.Join(t.TempDir(), "uploads"), testLogger())
	require.NoError(t, err)
	processor := &stubProcessor{}
	return api.NewDocumentHandler(processor, store, 3000, testLogger()), processor, store
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestFlashcardsFromInlineText(t *testing.T) {
	t.Parallel()

	handler, processor, _ := newHandler(t)

	rec := postJSON(t, handler.Flashcards, `{"text": "some document text"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.FlashcardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.QuestionsCount)
	assert.Equal(t, 1, resp.CardsTotal)
	require.Len(t, resp.Flashcards, 1)
	assert.Equal(t, domain.OutcomeFresh, resp.Flashcards[0].Kind)

	assert.Equal(t, "some document text", processor.lastText)
	assert.Equal(t, 3000, processor.lastMaxChars)
}

func TestFlashcardsFromUpload(t *testing.T) {
	t.Parallel()

	handler, processor, store := newHandler(t)

	id, err := store.Save(strings.NewReader("uploaded document"))
	require.NoError(t, err)

	rec := postJSON(t, handler.Flashcards, `{"upload_id": "`+id+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uploaded document", processor.lastText)
}

func TestFlashcardsUnknownUpload(t *testing.T) {
	t.Parallel()

	handler, _, _ := newHandler(t)

	rec := postJSON(t, handler.Flashcards, `{"upload_id": "8f14e45f-ceea-4672-9b3c-2a1b0e6b83da"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFlashcardsRequestValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "both fields set", body: `{"text": "x", "upload_id": "y"}`},
		{name: "not json", body: `text=x`},
		{name: "unknown field", body: `{"document": "x"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler, _, _ := newHandler(t)
			rec := postJSON(t, handler.Flashcards, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUploadStoresDocument(t *testing.T) {
	t.Parallel()

	handler, _, store := newHandler(t)

	rec := postJSON(t, handler.Upload, `{"text": "to be stored"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	data, err := store.Read(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "to be stored", string(data))
}

func TestUploadRejectsEmptyText(t *testing.T) {
	t.Parallel()

	handler, _, _ := newHandler(t)

	rec := postJSON(t, handler.Upload, `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
