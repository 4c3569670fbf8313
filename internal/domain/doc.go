// Package domain contains the core entities of the flashcard pipeline:
// text chunks, flashcards, per-chunk outcomes, and a closed representation
// of the dynamically-shaped JSON recovered from model replies. It represents
// the heart of the system, independent of any specific infrastructure or
// delivery mechanism.
package domain
