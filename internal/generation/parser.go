package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/KalminX/flash-card/internal/domain"
)

// fencedJSON matches the first ```json fence in a model reply. The fence
// syntax is strict; the prose around it is not our concern.
var fencedJSON = regexp.MustCompile("(?s)```json\n(.*?)\n```")

// ExtractCards recovers the flashcard list from a model's free-form reply.
//
// It locates the first ```json fenced block and parses its contents as
// JSON. The boolean result is false when no fence is present or the fenced
// content is not valid JSON; callers must treat that as "no flashcards
// extracted", not as an exception. No semantic validation of field names is
// performed beyond syntactic well-formedness.
func ExtractCards(reply string) (domain.Value, bool) {
	match := fencedJSON.FindStringSubmatch(reply)
	if match == nil {
		return domain.Value{}, false
	}

	raw := strings.TrimSpace(match[1])
	var cards domain.Value
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return domain.Value{}, false
	}
	return cards, true
}
