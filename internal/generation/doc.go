// Package generation provides the interface and shared helpers for
// interacting with external AI/LLM services for flashcard generation. It
// abstracts the details of LLM API integration (Gemini), allowing the
// pipeline to generate flashcards from text chunks without coupling to a
// specific external service, and holds the parser that recovers a fenced
// JSON flashcard list from a model's free-form reply.
package generation
