package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/mocks"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flashcardFixture struct {
	flashcards  *mocks.MockFlashcardStore
	generations *mocks.MockGenerationStore
	tx          *mocks.MockTransactor
	svc         service.FlashcardService
}

func newFlashcardFixture(t *testing.T) *flashcardFixture {
	t.Helper()
	f := &flashcardFixture{
		flashcards:  &mocks.MockFlashcardStore{},
		generations: &mocks.MockGenerationStore{},
		tx:          &mocks.MockTransactor{},
	}
	svc, err := service.NewFlashcardService(f.flashcards, f.generations, f.tx, discardLogger())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *flashcardFixture) addGeneration(userID uuid.UUID, generated int) *domain.Generation {
	return f.generations.Add(domain.NewGeneration(userID, "openai/gpt-4o-mini", validSource, generated, time.Second))
}

func TestNewFlashcardService_RejectsNilDependencies(t *testing.T) {
	t.Parallel()

	_, err := service.NewFlashcardService(nil, &mocks.MockGenerationStore{}, &mocks.MockTransactor{}, discardLogger())
	assert.Error(t, err)
	_, err = service.NewFlashcardService(&mocks.MockFlashcardStore{}, &mocks.MockGenerationStore{}, nil, discardLogger())
	assert.Error(t, err)
	_, err = service.NewFlashcardService(&mocks.MockFlashcardStore{}, &mocks.MockGenerationStore{}, &mocks.MockTransactor{}, nil)
	assert.Error(t, err)
}

func TestCreateFlashcard(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()

	card, err := f.svc.Create(context.Background(), userID, "  Capital of France? ", " Paris ")
	require.NoError(t, err)
	assert.NotZero(t, card.ID)
	assert.Equal(t, "Capital of France?", card.Front)
	assert.Equal(t, "Paris", card.Back)
	assert.Equal(t, domain.SourceManual, card.Source)
	assert.Nil(t, card.GenerationID)
}

func TestCreateFlashcard_Validation(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), "", strings.Repeat("b", domain.MaxBackLength+1))
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs.Fields(), "front")
	assert.Contains(t, fieldErrs.Fields(), "back")
	assert.Empty(t, f.flashcards.All())

	_, err = f.svc.Create(context.Background(), uuid.Nil, "Q", "A")
	assert.ErrorIs(t, err, service.ErrInvalidUser)
}

func TestAcceptBatch_CreatesCardsAndUpdatesCounters(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	g := f.addGeneration(userID, 5)

	result, err := f.svc.AcceptBatch(context.Background(), userID, g.ID, []service.AcceptedProposal{
		{Front: "Q1", Back: "A1", Source: domain.SourceAIFull},
		{Front: "Q2", Back: "A2", Source: domain.SourceAIFull},
		{Front: "Q3 edited", Back: "A3", Source: domain.SourceAIEdited},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	require.Len(t, result.Flashcards, 3)

	first := result.Flashcards[0]
	for _, card := range result.Flashcards {
		assert.NotZero(t, card.ID)
		require.NotNil(t, card.GenerationID)
		assert.Equal(t, g.ID, *card.GenerationID)
		assert.Equal(t, userID, card.UserID)
		assert.Equal(t, first.CreatedAt, card.CreatedAt, "cards in a batch share a timestamp")
	}

	stored, ok := f.generations.Snapshot(g.ID)
	require.True(t, ok)
	require.NotNil(t, stored.AcceptedUneditedCount)
	require.NotNil(t, stored.AcceptedEditedCount)
	assert.Equal(t, 2, *stored.AcceptedUneditedCount)
	assert.Equal(t, 1, *stored.AcceptedEditedCount)
	assert.Equal(t, 1, f.tx.CallCount())
}

func TestAcceptBatch_CountersAccumulate(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	g := f.addGeneration(userID, 4)

	for i := 0; i < 2; i++ {
		_, err := f.svc.AcceptBatch(context.Background(), userID, g.ID, []service.AcceptedProposal{
			{Front: "Q", Back: "A", Source: domain.SourceAIEdited},
		})
		require.NoError(t, err)
	}

	stored, _ := f.generations.Snapshot(g.ID)
	assert.Equal(t, 0, *stored.AcceptedUneditedCount)
	assert.Equal(t, 2, *stored.AcceptedEditedCount)
	assert.Equal(t, 2, stored.TotalAccepted())
}

func TestAcceptBatch_RejectsOverAccept(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	g := f.addGeneration(userID, 2)

	_, err := f.svc.AcceptBatch(context.Background(), userID, g.ID, []service.AcceptedProposal{
		{Front: "Q1", Back: "A1", Source: domain.SourceAIFull},
		{Front: "Q2", Back: "A2", Source: domain.SourceAIFull},
		{Front: "Q3", Back: "A3", Source: domain.SourceAIFull},
	})
	assert.ErrorIs(t, err, store.ErrOverAccept)
	assert.Empty(t, f.flashcards.All())

	stored, _ := f.generations.Snapshot(g.ID)
	assert.Nil(t, stored.AcceptedUneditedCount)
}

func TestAcceptBatch_GenerationOwnedByAnotherUser(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	g := f.addGeneration(uuid.New(), 5)

	_, err := f.svc.AcceptBatch(context.Background(), uuid.New(), g.ID, []service.AcceptedProposal{
		{Front: "Q", Back: "A", Source: domain.SourceAIFull},
	})
	assert.ErrorIs(t, err, store.ErrGenerationNotFound)
	assert.Empty(t, f.flashcards.All())
}

func TestAcceptBatch_InputErrors(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tooMany := make([]service.AcceptedProposal, service.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = service.AcceptedProposal{Front: "Q", Back: "A", Source: domain.SourceAIFull}
	}

	tests := []struct {
		name    string
		userID  uuid.UUID
		genID   int64
		items   []service.AcceptedProposal
		wantErr error
	}{
		{"no user", uuid.Nil, 1, tooMany[:1], service.ErrInvalidUser},
		{"empty", userID, 1, nil, service.ErrEmptyBatch},
		{"too many", userID, 1, tooMany, service.ErrBatchTooLarge},
		{"bad generation id", userID, 0, tooMany[:1], domain.ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFlashcardFixture(t)
			_, err := f.svc.AcceptBatch(context.Background(), tc.userID, tc.genID, tc.items)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, f.tx.CallCount())
		})
	}
}

func TestAcceptBatch_FieldErrorsAreIndexed(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	g := f.addGeneration(userID, 5)

	_, err := f.svc.AcceptBatch(context.Background(), userID, g.ID, []service.AcceptedProposal{
		{Front: "ok", Back: "ok", Source: domain.SourceAIFull},
		{Front: "", Back: "ok", Source: domain.SourceAIFull},
		{Front: "ok", Back: "ok", Source: domain.SourceManual},
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	fields := fieldErrs.Fields()
	assert.Contains(t, fields, "flashcards[1].front")
	assert.Contains(t, fields, "flashcards[2].source")
	assert.Zero(t, f.tx.CallCount(), "nothing is written when any item is invalid")
}

func TestAcceptBatch_StoreFailureIsWrapped(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	g := f.addGeneration(userID, 5)
	f.flashcards.CreateManyFn = func(context.Context, []*domain.Flashcard) error {
		return errors.New("insert failed")
	}

	_, err := f.svc.AcceptBatch(context.Background(), userID, g.ID, []service.AcceptedProposal{
		{Front: "Q", Back: "A", Source: domain.SourceAIFull},
	})
	var svcErr *service.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "accept_batch", svcErr.Operation)
}

func TestAcceptBatch_TransactionFailure(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	f.tx.RunInTxFn = func(context.Context, store.TxFn) error {
		return store.ErrTransactionFailed
	}

	_, err := f.svc.AcceptBatch(context.Background(), uuid.New(), 1, []service.AcceptedProposal{
		{Front: "Q", Back: "A", Source: domain.SourceAIFull},
	})
	assert.ErrorIs(t, err, store.ErrTransactionFailed)
}

func TestUpdateFlashcard_FlipsAIFullToAIEdited(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	g := f.addGeneration(userID, 1)
	result, err := f.svc.AcceptBatch(context.Background(), userID, g.ID, []service.AcceptedProposal{
		{Front: "Q", Back: "A", Source: domain.SourceAIFull},
	})
	require.NoError(t, err)
	id := result.Flashcards[0].ID

	updated, err := f.svc.Update(context.Background(), userID, id, "Q2", "A2")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAIEdited, updated.Source)
	assert.Equal(t, "Q2", updated.Front)

	again, err := f.svc.Update(context.Background(), userID, id, "Q3", "A3")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAIEdited, again.Source, "the transition happens once")

	stored, _ := f.generations.Snapshot(g.ID)
	assert.Equal(t, 1, *stored.AcceptedUneditedCount, "editing does not touch generation counters")
}

func TestUpdateFlashcard_ManualStaysManual(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	userID := uuid.New()
	card, err := f.svc.Create(context.Background(), userID, "Q", "A")
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), userID, card.ID, "Q!", "A!")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceManual, updated.Source)
}

func TestUpdateFlashcard_Errors(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	owner := uuid.New()
	card, err := f.svc.Create(context.Background(), owner, "Q", "A")
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), uuid.New(), card.ID, "Q", "A")
	assert.ErrorIs(t, err, store.ErrFlashcardNotFound)

	_, err = f.svc.Update(context.Background(), owner, card.ID, " ", "A")
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := f.svc.Get(context.Background(), owner, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q", stored.Front, "a rejected edit leaves the card unchanged")
}

func TestGetAndDeleteFlashcard(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	owner := uuid.New()
	card, err := f.svc.Create(context.Background(), owner, "Q", "A")
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), uuid.New(), card.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), uuid.New(), card.ID), store.ErrFlashcardNotFound)
	require.NoError(t, f.svc.Delete(context.Background(), owner, card.ID))

	_, err = f.svc.Get(context.Background(), owner, card.ID)
	assert.ErrorIs(t, err, store.ErrFlashcardNotFound)
}

func TestListFlashcards(t *testing.T) {
	t.Parallel()

	f := newFlashcardFixture(t)
	owner := uuid.New()
	for _, front := range []string{"Apple", "Banana", "Cherry"} {
		_, err := f.svc.Create(context.Background(), owner, front, "fruit")
		require.NoError(t, err)
	}
	_, err := f.svc.Create(context.Background(), uuid.New(), "Apple", "someone else's")
	require.NoError(t, err)

	page, err := f.svc.List(context.Background(), owner, domain.FlashcardQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	page, err = f.svc.List(context.Background(), owner, domain.FlashcardQuery{Search: "APP"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Apple", page.Items[0].Front)
	assert.Equal(t, domain.DefaultPageSize, page.Pagination.PageSize)

	page, err = f.svc.List(context.Background(), owner, domain.FlashcardQuery{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalItems)
}
