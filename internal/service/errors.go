package service

import (
	"errors"
	"fmt"
)

// Service sentinel errors.
var (
	// ErrInvalidUser is returned when an operation is called without a user.
	ErrInvalidUser = errors.New("invalid user")

	// ErrEmptyBatch is returned when a batch accept carries no flashcards.
	ErrEmptyBatch = errors.New("batch must contain at least one flashcard")

	// ErrBatchTooLarge is returned when a batch accept exceeds MaxBatchSize.
	ErrBatchTooLarge = fmt.Errorf("batch must contain at most %d flashcards", MaxBatchSize)

	// ErrNoProposalsGenerated is returned when the provider succeeded but
	// produced nothing usable.
	ErrNoProposalsGenerated = errors.New("AI service did not generate any flashcards")

	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidConfirmation is returned when account deletion is not
	// confirmed with the literal DeleteConfirmation.
	ErrInvalidConfirmation = errors.New("account deletion was not confirmed")
)

// ServiceError adds operation context to an unexpected failure.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err, returning nil for a nil err.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// User-facing generation failure messages.
const (
	MsgProviderTimeout     = "AI service request timed out. Please try again."
	MsgProviderUnavailable = "Failed to generate flashcards. Please try again later."
	MsgMalformedResponse   = "Failed to parse AI response. Please try again."
	MsgNoProposals         = "AI service did not generate any flashcards"
	MsgPersistenceFailure  = "An error occurred while saving generation data"
)

// GenerationError is a failed generation request. Message is safe to return
// to API clients; Err holds the diagnostic cause and must not be exposed.
type GenerationError struct {
	Code    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("generation failed (%s): %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}
