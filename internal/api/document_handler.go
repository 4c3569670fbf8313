package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/KalminX/flash-card/internal/api/shared"
	"github.com/KalminX/flash-card/internal/chunk"
	"github.com/KalminX/flash-card/internal/domain"
	"github.com/KalminX/flash-card/internal/pipeline"
	"github.com/KalminX/flash-card/internal/upload"
)

// DocumentProcessor is the slice of the pipeline the handler needs.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, text string, maxChars int) (*pipeline.DocumentResult, error)
}

// UploadRequest is the request body for storing a document.
type UploadRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// UploadResponse returns the id of a stored document.
type UploadResponse struct {
	ID string `json:"id"`
}

// FlashcardsRequest asks for flashcards from either inline text or a
// previously stored upload.
type FlashcardsRequest struct {
	Text     string `json:"text"      validate:"required_without=UploadID,excluded_with=UploadID"`
	UploadID string `json:"upload_id" validate:"required_without=Text,excluded_with=Text"`
}

// FlashcardsResponse carries one entry per chunk, in document order.
type FlashcardsResponse struct {
	Flashcards     []ChunkResult `json:"flashcards"`
	QuestionsCount int           `json:"questions_count"`
	CardsTotal     int           `json:"cards_total"`
}

// ChunkResult is the rendered outcome for one chunk.
type ChunkResult struct {
	Kind  domain.OutcomeKind `json:"kind"`
	Cards domain.Value       `json:"cards"`
}

// DocumentHandler handles document upload and flashcard generation
// requests.
type DocumentHandler struct {
	processor DocumentProcessor
	uploads   *upload.Store
	chunkSize int
	validator *validator.Validate
	logger    *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(
	processor DocumentProcessor,
	uploads *upload.Store,
	chunkSize int,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		processor: processor,
		uploads:   uploads,
		chunkSize: chunkSize,
		validator: validator.New(),
		logger:    logger,
	}
}

// Upload handles POST /api/uploads requests.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := h.uploads.Save(bytes.NewReader([]byte(req.Text)))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to store upload", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to store document")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, UploadResponse{ID: id})
}

// Flashcards handles POST /api/flashcards requests.
func (h *DocumentHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	var req FlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	text := req.Text
	if req.UploadID != "" {
		data, err := h.uploads.Read(req.UploadID)
		if errors.Is(err, upload.ErrNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Unknown upload id")
			return
		}
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to read upload", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to read document")
			return
		}
		text = string(data)
	}

	result, err := h.processor.ProcessDocument(r.Context(), text, h.chunkSize)
	if err != nil {
		if errors.Is(err, chunk.ErrInvalidChunkSize) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid chunk size")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to process document", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to process document")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toFlashcardsResponse(result))
}

func toFlashcardsResponse(result *pipeline.DocumentResult) FlashcardsResponse {
	results := make([]ChunkResult, len(result.Outcomes))
	cardsTotal := 0
	for i, outcome := range result.Outcomes {
		results[i] = ChunkResult{Kind: outcome.Kind, Cards: outcome.Cards}
		if !outcome.Failed() {
			cardsTotal += len(domain.Flashcards(outcome.Cards))
		}
	}
	return FlashcardsResponse{
		Flashcards:     results,
		QuestionsCount: result.QuestionsCount,
		CardsTotal:     cardsTotal,
	}
}
