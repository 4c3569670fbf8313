package gemini_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalminX/flash-card/internal/config"
	"github.com/KalminX/flash-card/internal/generation"
	"github.com/KalminX/flash-card/internal/platform/gemini"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:          "test-key",
		ModelName:             "gemini-2.0-flash",
		BaseURL:               baseURL,
		RequestTimeoutSeconds: 5,
		MaxConcurrentRequests: 3,
	}
}

// replyWith builds a generateContent response whose first candidate holds
// the given text.
func replyWith(text string) string {
	resp := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": text},
					},
				},
			},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestNewGeneratorValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewGenerator(nil, testConfig(""))
	assert.Error(t, err)

	cfg := testConfig("")
	cfg.GeminiAPIKey = ""
	_, err = gemini.NewGenerator(testLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testConfig("")
	cfg.ModelName = ""
	_, err = gemini.NewGenerator(testLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateCardsSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		gotPrompt = req.Contents[0].Parts[0].Text

		fmt.Fprint(w, replyWith("Sure! ```json\n[{\"1\":{\"q\":\"Q\",\"a\":\"A\"}}]\n```"))
	}))
	defer srv.Close()

	g, err := gemini.NewGenerator(testLogger(), testConfig(srv.URL))
	require.NoError(t, err)

	cards, err := g.GenerateCards(context.Background(), "chunk body text")
	require.NoError(t, err)

	out, err := json.Marshal(cards)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"1":{"q":"Q","a":"A"}}]`, string(out))

	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotPrompt, "flashcard-style questions and answers")
	assert.Contains(t, gotPrompt, "chunk body text")
}

func TestGenerateCardsReadsFirstPartOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"candidates": []interface{}{
				map[string]interface{}{
					"content": map[string]interface{}{
						"parts": []interface{}{
							map[string]interface{}{"text": "```json\n[\"a\"]\n```"},
							map[string]interface{}{"text": "```json\n[\"b\",\"c\"]\n```"},
						},
					},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	g, err := gemini.NewGenerator(testLogger(), testConfig(srv.URL))
	require.NoError(t, err)

	cards, err := g.GenerateCards(context.Background(), "text")
	require.NoError(t, err)

	require.Len(t, cards.Elems(), 1)
	assert.Equal(t, "a", cards.Elems()[0].Str())
}

func TestGenerateCardsRemoteStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusBadRequest} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream failure", status)
		}))

		g, err := gemini.NewGenerator(testLogger(), testConfig(srv.URL))
		require.NoError(t, err)

		_, err = g.GenerateCards(context.Background(), "text")
		assert.ErrorIs(t, err, generation.ErrRemoteStatus, "status %d", status)
		srv.Close()
	}
}

func TestGenerateCardsTransportFailures(t *testing.T) {
	t.Parallel()

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse all connections

		g, err := gemini.NewGenerator(testLogger(), testConfig(srv.URL))
		require.NoError(t, err)

		_, err = g.GenerateCards(context.Background(), "text")
		assert.ErrorIs(t, err, generation.ErrTransportFailure)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.RequestTimeoutSeconds = 1
		g, err := gemini.NewGenerator(testLogger(), cfg)
		require.NoError(t, err)

		_, err = g.GenerateCards(context.Background(), "text")
		assert.ErrorIs(t, err, generation.ErrTransportFailure)
	})

	t.Run("malformed response body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "{not json")
		}))
		defer srv.Close()

		g, err := gemini.NewGenerator(testLogger(), testConfig(srv.URL))
		require.NoError(t, err)

		_, err = g.GenerateCards(context.Background(), "text")
		assert.ErrorIs(t, err, generation.ErrTransportFailure)
	})
}

func TestGenerateCardsInvalidResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no candidates", body: `{"candidates": []}`},
		{name: "empty parts", body: `{"candidates": [{"content": {"parts": []}}]}`},
		{name: "reply without fence", body: replyWith("I have no flashcards for you.")},
		{name: "malformed json in fence", body: replyWith("```json\n[{\"1\": }\n```")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			g, err := gemini.NewGenerator(testLogger(), testConfig(srv.URL))
			require.NoError(t, err)

			_, err = g.GenerateCards(context.Background(), "text")
			assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		})
	}
}

func TestGenerateCardsEmptyChunk(t *testing.T) {
	t.Parallel()

	g, err := gemini.NewGenerator(testLogger(), testConfig("http://localhost:1"))
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), "")
	assert.ErrorIs(t, err, gemini.ErrEmptyChunkText)
}
