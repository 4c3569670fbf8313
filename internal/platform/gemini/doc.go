// Package gemini implements the generation.Generator interface against the
// Gemini generateContent REST endpoint. It owns the wire-level request and
// response shapes, the fixed flashcard instruction prompt, and the
// classification of remote failures into the generation package's sentinel
// errors.
package gemini
