// Package domain contains the core entities of the flashcard application:
// users, flashcards, AI generation records and their audit trail. It holds
// the invariants that do not depend on storage or transport, such as the
// provenance transition of an edited card or the acceptance-rate formula.
package domain
