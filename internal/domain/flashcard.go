package domain

import "sort"

// Flashcard is a single question/answer pair extracted from a model reply.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Flashcards flattens a parsed reply into question/answer pairs.
//
// The model is instructed to reply with an array of single-member objects,
// each mapping an index key to {"q": ..., "a": ...}. This walks that shape
// leniently: cards inside each array element are visited in sorted key order,
// and both the short ("q"/"a") and long ("question"/"answer") field names are
// accepted. Elements that do not look like cards are skipped.
func Flashcards(v Value) []Flashcard {
	if v.Kind() != KindArray {
		return nil
	}
	var cards []Flashcard
	for _, elem := range v.Elems() {
		if elem.Kind() != KindObject {
			continue
		}
		members := elem.Members()
		keys := make([]string, 0, len(members))
		for k := range members {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if card, ok := flashcardFrom(members[k]); ok {
				cards = append(cards, card)
			}
		}
	}
	return cards
}

func flashcardFrom(v Value) (Flashcard, bool) {
	if v.Kind() != KindObject {
		return Flashcard{}, false
	}
	members := v.Members()
	question, qok := stringField(members, "q", "question")
	answer, aok := stringField(members, "a", "answer")
	if !qok && !aok {
		return Flashcard{}, false
	}
	return Flashcard{Question: question, Answer: answer}, true
}

func stringField(members map[string]Value, names ...string) (string, bool) {
	for _, name := range names {
		if field, ok := members[name]; ok && field.Kind() == KindString {
			return field.Str(), true
		}
	}
	return "", false
}
