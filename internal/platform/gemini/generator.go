package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KalminX/flash-card/internal/config"
	"github.com/KalminX/flash-card/internal/domain"
	"github.com/KalminX/flash-card/internal/generation"
	"github.com/KalminX/flash-card/internal/redact"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// instructionPrompt is the fixed instruction prepended to every chunk. The
// chunk text follows after the trailing blank line.
const instructionPrompt = "Read the following content and return only a list of flashcard-style questions and answers. " +
	"Do not include any introductions, explanations, or conclusions. " +
	"Strictly output only the Q&A flashcards. In a json format of the form " +
	"[{'1': {'q': 'response', 'a': 'response'}}]\n\n"

// Generator implements generation.Generator using the Gemini REST API.
type Generator struct {
	logger  *slog.Logger
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGenerator creates a Gemini-backed generator from the LLM configuration.
// The API key and model name must be set; the base URL defaults to the
// public Gemini endpoint and is overridable for tests.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Generator{
		logger:  logger,
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.ModelName,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
	}, nil
}

// GenerateCards sends one chunk to the generateContent endpoint and parses
// the fenced JSON flashcard list out of the reply.
func (g *Generator) GenerateCards(ctx context.Context, chunkText string) (domain.Value, error) {
	if chunkText == "" {
		return domain.Value{}, ErrEmptyChunkText
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	body := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: instructionPrompt + chunkText}}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Value{}, fmt.Errorf("%w: marshaling request: %v", generation.ErrTransportFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return domain.Value{}, fmt.Errorf("%w: creating request: %v", generation.ErrTransportFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"chunk_length", len(chunkText))

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Value{}, fmt.Errorf("%w: sending request: %v",
			generation.ErrTransportFailure, redact.Error(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Value{}, fmt.Errorf("%w: reading response: %v", generation.ErrTransportFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.ErrorContext(ctx, "Gemini API returned error status",
			"status", resp.StatusCode,
			"body", redact.String(string(respBody)))
		return domain.Value{}, fmt.Errorf("%w: status %d", generation.ErrRemoteStatus, resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return domain.Value{}, fmt.Errorf("%w: malformed response body: %v", generation.ErrTransportFailure, err)
	}

	text := replyText(result)
	if text == "" {
		return domain.Value{}, fmt.Errorf("%w: no content in response", generation.ErrInvalidResponse)
	}

	cards, ok := generation.ExtractCards(text)
	if !ok {
		return domain.Value{}, fmt.Errorf("%w: no parseable JSON block in reply", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		"reply_length", len(text))
	return cards, nil
}

// replyText extracts the model output: the text of the first part of the
// first candidate's content. Later parts and candidates are ignored.
func replyText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
