// Package generation defines the boundary between the application and the
// external language models that turn source text into flashcard proposals.
// Concrete providers live under internal/platform; this package holds the
// contract, the shared instruction prompt, reply parsing and the error
// taxonomy every provider reports through.
package generation
