package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/KKuznik/10x-cards/internal/service/auth"
	"github.com/KKuznik/10x-cards/internal/store"
)

// MsgUnexpected is the body of any 5xx whose cause is not safe to describe.
const MsgUnexpected = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Ownership failures are indistinguishable from missing rows: both are 404.
func MapErrorToStatusCode(err error) int {
	var genErr *service.GenerationError
	switch {
	case err == nil:
		return http.StatusOK

	case errors.As(err, &genErr),
		errors.Is(err, service.ErrNoProposalsGenerated):
		return http.StatusInternalServerError

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrOverAccept):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, service.ErrInvalidConfirmation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to API clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var genErr *service.GenerationError
	switch {
	case errors.As(err, &genErr):
		if genErr.Message != "" {
			return genErr.Message
		}
		return service.MsgProviderUnavailable
	case errors.Is(err, service.ErrNoProposalsGenerated):
		return service.MsgNoProposals

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, domain.ErrUnauthorized):
		return "User ID not found or invalid"

	case errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"
	case errors.Is(err, store.ErrGenerationNotFound):
		return "Generation not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrOverAccept):
		return "Accepted flashcards would exceed the number of generated proposals"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		return capitalize(err.Error())
	case errors.Is(err, service.ErrInvalidConfirmation):
		return `Account deletion must be confirmed with "` + service.DeleteConfirmation + `"`
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return shared.MsgValidationFailed

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the response for err. Validation failures get a
// field map; everything else gets the mapped status and safe message.
// Ownership misses are logged at WARN since they may be probing.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if fields := shared.ValidationFieldErrors(err); len(fields) > 0 {
		shared.RespondWithValidationError(w, r, fields)
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if status == http.StatusNotFound || status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// logOwnershipMiss records a lookup that found nothing for the caller.
func logOwnershipMiss(r *http.Request, fallback *slog.Logger, resource string, id int64, err error) {
	if !errors.Is(err, store.ErrNotFound) {
		return
	}
	userID, _ := getUserIDFromContext(r)
	logger.FromContextOrDefault(r.Context(), fallback).Warn("resource not found for user",
		slog.String("resource", resource),
		slog.Int64("resource_id", id),
		slog.String("user_id", userID.String()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
