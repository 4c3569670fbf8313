package chunk

import (
	"errors"
	"fmt"

	"github.com/KalminX/flash-card/internal/domain"
)

// ErrInvalidChunkSize is returned when the requested chunk size is not a
// positive number of characters.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Split divides text into ordered chunks of at most maxChars characters,
// where a character is a Unicode code point. Boundaries never fall inside
// a multi-byte rune, so every chunk is valid UTF-8 on its own.
//
// Concatenating the returned chunk texts in order reproduces text exactly,
// and every chunk except possibly the last holds exactly maxChars runes.
// Empty text yields no chunks. A maxChars of zero or less is a contract
// violation and fails with ErrInvalidChunkSize.
func Split(text string, maxChars int) ([]domain.Chunk, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, maxChars)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	chunks := make([]domain.Chunk, 0, (len(runes)+maxChars-1)/maxChars)
	for pos := 0; pos < len(runes); pos += maxChars {
		end := pos + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			Index: len(chunks),
			Text:  string(runes[pos:end]),
		})
	}
	return chunks, nil
}
