// Package service contains the application use cases: generating flashcard
// proposals (GenerationService), managing and batch-accepting flashcards
// (FlashcardService), and registering and authenticating users
// (UserService).
//
// Services depend on the store interfaces and the generation.Provider
// contract, never on a concrete database or model API. Writes that touch
// more than one table run through a store.Transactor.
//
// Expected conditions are returned as sentinel errors (ErrInvalidUser,
// ErrEmptyBatch, store.ErrFlashcardNotFound, ...) so the API layer can map
// them with errors.Is. Generation failures are returned as *GenerationError,
// which carries the message that is safe to show to the user.
package service
