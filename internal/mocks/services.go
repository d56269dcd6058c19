package mocks

import (
	"context"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/google/uuid"
)

// MockGenerationService implements service.GenerationService for handler
// tests. Unset functions return zero values.
type MockGenerationService struct {
	GenerateFn func(ctx context.Context, userID uuid.UUID, sourceText, model string) (*service.GenerationResult, error)
	GetFn      func(ctx context.Context, userID uuid.UUID, id int64) (*service.GenerationDetail, error)
	ListFn     func(ctx context.Context, userID uuid.UUID, query domain.GenerationQuery) (*service.GenerationPage, error)
}

var _ service.GenerationService = (*MockGenerationService)(nil)

// Generate implements service.GenerationService.
func (m *MockGenerationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	sourceText, model string,
) (*service.GenerationResult, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, userID, sourceText, model)
	}
	return nil, nil
}

// Get implements service.GenerationService.
func (m *MockGenerationService) Get(ctx context.Context, userID uuid.UUID, id int64) (*service.GenerationDetail, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, id)
	}
	return nil, nil
}

// List implements service.GenerationService.
func (m *MockGenerationService) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.GenerationQuery,
) (*service.GenerationPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, query)
	}
	return nil, nil
}

// MockFlashcardService implements service.FlashcardService.
type MockFlashcardService struct {
	CreateFn func(ctx context.Context, userID uuid.UUID, front, back string) (*domain.Flashcard, error)
	AcceptBatchFn func(
		ctx context.Context,
		userID uuid.UUID,
		generationID int64,
		items []service.AcceptedProposal,
	) (*service.BatchResult, error)
	GetFn    func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Flashcard, error)
	UpdateFn func(ctx context.Context, userID uuid.UUID, id int64, front, back string) (*domain.Flashcard, error)
	DeleteFn func(ctx context.Context, userID uuid.UUID, id int64) error
	ListFn   func(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) (*service.FlashcardPage, error)
}

var _ service.FlashcardService = (*MockFlashcardService)(nil)

// Create implements service.FlashcardService.
func (m *MockFlashcardService) Create(
	ctx context.Context,
	userID uuid.UUID,
	front, back string,
) (*domain.Flashcard, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, front, back)
	}
	return nil, nil
}

// AcceptBatch implements service.FlashcardService.
func (m *MockFlashcardService) AcceptBatch(
	ctx context.Context,
	userID uuid.UUID,
	generationID int64,
	items []service.AcceptedProposal,
) (*service.BatchResult, error) {
	if m.AcceptBatchFn != nil {
		return m.AcceptBatchFn(ctx, userID, generationID, items)
	}
	return nil, nil
}

// Get implements service.FlashcardService.
func (m *MockFlashcardService) Get(ctx context.Context, userID uuid.UUID, id int64) (*domain.Flashcard, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, id)
	}
	return nil, nil
}

// Update implements service.FlashcardService.
func (m *MockFlashcardService) Update(
	ctx context.Context,
	userID uuid.UUID,
	id int64,
	front, back string,
) (*domain.Flashcard, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, id, front, back)
	}
	return nil, nil
}

// Delete implements service.FlashcardService.
func (m *MockFlashcardService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	return nil
}

// List implements service.FlashcardService.
func (m *MockFlashcardService) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.FlashcardQuery,
) (*service.FlashcardPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, query)
	}
	return nil, nil
}

// MockUserService implements service.UserService.
type MockUserService struct {
	RegisterFn      func(ctx context.Context, email, password string) (*service.AuthResult, error)
	LoginFn         func(ctx context.Context, email, password string) (*service.AuthResult, error)
	LogoutFn        func(ctx context.Context, userID uuid.UUID) error
	DeleteAccountFn func(ctx context.Context, userID uuid.UUID, password, confirmation string) error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService.
func (m *MockUserService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password)
	}
	return nil, nil
}

// Login implements service.UserService.
func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil, nil
}

// Logout implements service.UserService.
func (m *MockUserService) Logout(ctx context.Context, userID uuid.UUID) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, userID)
	}
	return nil
}

// DeleteAccount implements service.UserService.
func (m *MockUserService) DeleteAccount(ctx context.Context, userID uuid.UUID, password, confirmation string) error {
	if m.DeleteAccountFn != nil {
		return m.DeleteAccountFn(ctx, userID, password, confirmation)
	}
	return nil
}
