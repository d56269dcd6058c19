package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/KKuznik/10x-cards/internal/redact"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxBatchSize is the largest number of proposals accepted in one call.
const MaxBatchSize = 50

// AcceptedProposal is one reviewed proposal in a batch accept. Source must be
// ai-full or ai-edited.
type AcceptedProposal struct {
	Front  string
	Back   string
	Source domain.Source
}

// BatchResult is the outcome of a batch accept.
type BatchResult struct {
	Created    int
	Flashcards []*domain.Flashcard
}

// FlashcardPage is one page of flashcards.
type FlashcardPage struct {
	Items      []*domain.Flashcard
	Pagination domain.Pagination
}

// FlashcardService manages a user's flashcards.
type FlashcardService interface {
	// Create adds a manual flashcard.
	Create(ctx context.Context, userID uuid.UUID, front, back string) (*domain.Flashcard, error)

	// AcceptBatch creates flashcards from reviewed proposals and bumps the
	// generation's accepted counters in one transaction.
	AcceptBatch(
		ctx context.Context,
		userID uuid.UUID,
		generationID int64,
		items []AcceptedProposal,
	) (*BatchResult, error)

	// Get returns an owned flashcard.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*domain.Flashcard, error)

	// Update edits an owned flashcard; ai-full cards become ai-edited.
	Update(ctx context.Context, userID uuid.UUID, id int64, front, back string) (*domain.Flashcard, error)

	// Delete removes an owned flashcard.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error

	// List returns one page of the user's flashcards.
	List(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) (*FlashcardPage, error)
}

type flashcardService struct {
	flashcards  store.FlashcardStore
	generations store.GenerationStore
	tx          store.Transactor
	logger      *slog.Logger
	now         func() time.Time
}

var _ FlashcardService = (*flashcardService)(nil)

// NewFlashcardService creates a FlashcardService.
func NewFlashcardService(
	flashcards store.FlashcardStore,
	generations store.GenerationStore,
	tx store.Transactor,
	logger *slog.Logger,
) (FlashcardService, error) {
	if flashcards == nil || generations == nil {
		return nil, errors.New("stores cannot be nil")
	}
	if tx == nil {
		return nil, errors.New("transactor cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &flashcardService{
		flashcards:  flashcards,
		generations: generations,
		tx:          tx,
		logger:      logger.With(slog.String("component", "flashcard_service")),
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create implements FlashcardService.
func (s *flashcardService) Create(ctx context.Context, userID uuid.UUID, front, back string) (*domain.Flashcard, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}

	card, err := domain.NewFlashcard(userID, front, back, domain.SourceManual, nil)
	if err != nil {
		return nil, err
	}

	if err := s.flashcards.Create(ctx, card); err != nil {
		return nil, NewServiceError("create_flashcard", "failed to save flashcard", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("flashcard created",
		slog.String("user_id", userID.String()),
		slog.Int64("flashcard_id", card.ID))
	return card, nil
}

// AcceptBatch implements FlashcardService.
func (s *flashcardService) AcceptBatch(
	ctx context.Context,
	userID uuid.UUID,
	generationID int64,
	items []AcceptedProposal,
) (*BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(items) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	now := s.now()
	cards, unedited, edited, err := buildBatch(userID, generationID, items, now)
	if err != nil {
		return nil, err
	}
	scope := store.Owned(userID, generationID)

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		generations := s.generations.WithTx(tx)
		flashcards := s.flashcards.WithTx(tx)

		g, err := generations.GetForUpdate(ctx, scope)
		if err != nil {
			return err
		}
		if g.TotalAccepted()+len(cards) > g.GeneratedCount {
			log.Warn("batch accept exceeds generated count",
				slog.String("user_id", userID.String()),
				slog.Int64("generation_id", generationID),
				slog.Int("generated_count", g.GeneratedCount),
				slog.Int("already_accepted", g.TotalAccepted()),
				slog.Int("requested", len(cards)))
			return store.ErrOverAccept
		}

		if err := flashcards.CreateMany(ctx, cards); err != nil {
			return err
		}
		return generations.AddAccepted(ctx, scope, unedited, edited, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrGenerationNotFound), errors.Is(err, store.ErrOverAccept):
			return nil, err
		default:
			log.Error("batch accept failed",
				slog.String("user_id", userID.String()),
				slog.Int64("generation_id", generationID),
				slog.String("error", redact.Error(err)))
			return nil, NewServiceError("accept_batch", "failed to save flashcards", err)
		}
	}

	log.Info("flashcards accepted",
		slog.String("user_id", userID.String()),
		slog.Int64("generation_id", generationID),
		slog.Int("unedited", unedited),
		slog.Int("edited", edited))

	return &BatchResult{Created: len(cards), Flashcards: cards}, nil
}

// buildBatch validates items and turns them into unsaved flashcards sharing
// one timestamp. Field errors are reported as flashcards[i].field.
func buildBatch(
	userID uuid.UUID,
	generationID int64,
	items []AcceptedProposal,
	now time.Time,
) (cards []*domain.Flashcard, unedited, edited int, err error) {
	var errs domain.ValidationErrors
	if generationID < 1 {
		errs.Add("generationId", "must be a positive integer")
		return nil, 0, 0, errs.ErrOrNil()
	}

	cards = make([]*domain.Flashcard, 0, len(items))
	for i, item := range items {
		if !item.Source.IsAI() {
			errs.Add(fmt.Sprintf("flashcards[%d].source", i), "must be one of ai-full, ai-edited")
			continue
		}

		gid := generationID
		card, cardErr := domain.NewFlashcard(userID, item.Front, item.Back, item.Source, &gid)
		if cardErr != nil {
			var fieldErrs domain.ValidationErrors
			if errors.As(cardErr, &fieldErrs) {
				for _, fe := range fieldErrs {
					errs.Add(fmt.Sprintf("flashcards[%d].%s", i, fe.Field), fe.Message)
				}
				continue
			}
			return nil, 0, 0, cardErr
		}
		card.CreatedAt = now
		card.UpdatedAt = now
		cards = append(cards, card)

		if item.Source == domain.SourceAIFull {
			unedited++
		} else {
			edited++
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, 0, 0, err
	}
	return cards, unedited, edited, nil
}

// Get implements FlashcardService.
func (s *flashcardService) Get(ctx context.Context, userID uuid.UUID, id int64) (*domain.Flashcard, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	return s.flashcards.GetByID(ctx, store.Owned(userID, id))
}

// Update implements FlashcardService.
func (s *flashcardService) Update(
	ctx context.Context,
	userID uuid.UUID,
	id int64,
	front, back string,
) (*domain.Flashcard, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}

	card, err := s.flashcards.GetByID(ctx, store.Owned(userID, id))
	if err != nil {
		return nil, err
	}

	previous := card.Source
	if err := card.ApplyEdit(front, back, s.now()); err != nil {
		return nil, err
	}

	if err := s.flashcards.Update(ctx, card); err != nil {
		if errors.Is(err, store.ErrFlashcardNotFound) {
			return nil, err
		}
		return nil, NewServiceError("update_flashcard", "failed to save flashcard", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("flashcard updated",
		slog.String("user_id", userID.String()),
		slog.Int64("flashcard_id", id),
		slog.String("previous_source", string(previous)),
		slog.String("source", string(card.Source)))
	return card, nil
}

// Delete implements FlashcardService.
func (s *flashcardService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if userID == uuid.Nil {
		return ErrInvalidUser
	}
	return s.flashcards.Delete(ctx, store.Owned(userID, id))
}

// List implements FlashcardService.
func (s *flashcardService) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.FlashcardQuery,
) (*FlashcardPage, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	query.Normalize()

	var (
		items []*domain.Flashcard
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.flashcards.List(gctx, userID, query)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.flashcards.Count(gctx, userID, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, NewServiceError("list_flashcards", "failed to load flashcards", err)
	}

	return &FlashcardPage{
		Items:      items,
		Pagination: domain.NewPagination(query.Page, query.PageSize, total),
	}, nil
}
