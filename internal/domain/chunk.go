package domain

// Chunk is an immutable segment of a document's extracted text.
// Index records the chunk's position in the source document and determines
// output ordering only; cache identity is derived from Text alone.
type Chunk struct {
	Index int
	Text  string
}
