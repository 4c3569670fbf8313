// Package chunk splits a document's extracted text into fixed-size,
// order-preserving segments for the generation pipeline. Splitting is a pure
// function of the text and the size limit.
package chunk
