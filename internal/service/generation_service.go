package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/generation"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/KKuznik/10x-cards/internal/redact"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
)

// auditTimeout bounds the error-log write, which runs detached from the
// request context so that a cancelled request still leaves an audit row.
const auditTimeout = 5 * time.Second

// GenerationResult is a persisted generation plus the proposals it produced.
type GenerationResult struct {
	Generation *domain.Generation
	Proposals  []generation.Proposal
}

// GenerationDetail is a generation with the flashcards accepted from it.
type GenerationDetail struct {
	Generation *domain.Generation
	Flashcards []*domain.Flashcard
}

// GenerationPage is one page of generations plus statistics over all of the
// user's generations.
type GenerationPage struct {
	Items      []*domain.Generation
	Pagination domain.Pagination
	Statistics domain.GenerationStatistics
}

// GenerationService runs AI generations and reads their history.
type GenerationService interface {
	// Generate calls the provider and persists a Generation on success.
	// Provider failures are recorded in the error log and returned as
	// *GenerationError.
	Generate(ctx context.Context, userID uuid.UUID, sourceText, model string) (*GenerationResult, error)

	// Get returns an owned generation with its flashcards.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*GenerationDetail, error)

	// List returns a page of the user's generations with statistics.
	List(ctx context.Context, userID uuid.UUID, query domain.GenerationQuery) (*GenerationPage, error)
}

// GenerationOptions tunes the orchestrator.
type GenerationOptions struct {
	DefaultModel string
	// MaxRetries is the number of extra attempts after a retryable provider
	// failure. Zero disables retries.
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type generationService struct {
	provider    generation.Provider
	generations store.GenerationStore
	flashcards  store.FlashcardStore
	errorLogs   store.GenerationErrorLogStore
	opts        GenerationOptions
	logger      *slog.Logger
}

var _ GenerationService = (*generationService)(nil)

// NewGenerationService creates a GenerationService.
func NewGenerationService(
	provider generation.Provider,
	generations store.GenerationStore,
	flashcards store.FlashcardStore,
	errorLogs store.GenerationErrorLogStore,
	opts GenerationOptions,
	logger *slog.Logger,
) (GenerationService, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if generations == nil || flashcards == nil || errorLogs == nil {
		return nil, errors.New("stores cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if opts.DefaultModel == "" {
		opts.DefaultModel = DefaultModelID
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = 500 * time.Millisecond
	}

	return &generationService{
		provider:    provider,
		generations: generations,
		flashcards:  flashcards,
		errorLogs:   errorLogs,
		opts:        opts,
		logger:      logger.With(slog.String("component", "generation_service")),
	}, nil
}

// Generate implements GenerationService.
func (s *generationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	sourceText, model string,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = s.opts.DefaultModel
	}
	if err := validateGenerationInput(sourceText, model); err != nil {
		return nil, err
	}

	start := time.Now()
	proposals, err := s.callProvider(ctx, sourceText, model)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			log.Info("generation cancelled by caller",
				slog.String("user_id", userID.String()),
				slog.Duration("elapsed", duration))
			return nil, err
		}

		code, message := classifyProviderError(err)
		log.Error("flashcard generation failed",
			slog.String("user_id", userID.String()),
			slog.String("model", model),
			slog.String("error_code", code),
			slog.Duration("duration", duration),
			slog.String("error", redact.Error(err)))
		s.recordFailure(ctx, domain.NewGenerationErrorLog(userID, model, sourceText, code, redact.Error(err)))

		return nil, &GenerationError{Code: code, Message: message, Err: err}
	}

	if len(proposals) == 0 {
		log.Warn("provider returned no proposals",
			slog.String("user_id", userID.String()),
			slog.String("model", model))
		s.recordFailure(ctx, domain.NewGenerationErrorLog(
			userID, model, sourceText, domain.ErrorCodeInvalidResponse, MsgNoProposals))
		return nil, ErrNoProposalsGenerated
	}

	g := domain.NewGeneration(userID, model, sourceText, len(proposals), duration)
	if err := s.generations.Create(ctx, g); err != nil {
		log.Error("failed to persist generation",
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(err)))
		return nil, &GenerationError{Message: MsgPersistenceFailure, Err: err}
	}

	log.Info("flashcards generated",
		slog.String("user_id", userID.String()),
		slog.Int64("generation_id", g.ID),
		slog.String("model", model),
		slog.Int("generated_count", g.GeneratedCount),
		slog.Int("duration_ms", g.GenerationDuration))

	return &GenerationResult{Generation: g, Proposals: proposals}, nil
}

// callProvider invokes the provider, retrying retryable failures with
// exponential backoff and jitter.
func (s *generationService) callProvider(
	ctx context.Context,
	sourceText, model string,
) ([]generation.Proposal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := retry.NewExponential(s.opts.RetryBaseDelay)
	b = retry.WithJitterPercent(50, b)
	b = retry.WithMaxRetries(uint64(s.opts.MaxRetries), b)

	var (
		proposals []generation.Proposal
		lastErr   error
		attempt   int
	)
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		var err error
		proposals, err = s.provider.Generate(ctx, sourceText, model)
		lastErr = err
		if err == nil || !generation.IsRetryable(err) || attempt > s.opts.MaxRetries {
			return err
		}
		log.Warn("retrying provider call",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", s.opts.MaxRetries),
			slog.String("error", redact.Error(err)))
		return retry.RetryableError(err)
	})
	if err != nil {
		// A cancellation while backing off reports the provider failure
		// that triggered the retry.
		if lastErr != nil && errors.Is(err, ctx.Err()) {
			return nil, lastErr
		}
		return nil, err
	}
	return proposals, nil
}

// recordFailure writes an audit row. It never fails the request: errors are
// logged and dropped.
func (s *generationService) recordFailure(ctx context.Context, entry *domain.GenerationErrorLog) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	if err := s.errorLogs.Create(auditCtx, entry); err != nil {
		log.Error("failed to write generation error log",
			slog.String("user_id", entry.UserID.String()),
			slog.String("error_code", entry.ErrorCode),
			slog.String("error", redact.Error(err)))
	}
}

// Get implements GenerationService.
func (s *generationService) Get(ctx context.Context, userID uuid.UUID, id int64) (*GenerationDetail, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	scope := store.Owned(userID, id)

	g, err := s.generations.GetByID(ctx, scope)
	if err != nil {
		return nil, err
	}

	cards, err := s.flashcards.ListByGeneration(ctx, scope)
	if err != nil {
		return nil, NewServiceError("get_generation", "failed to list flashcards", err)
	}

	return &GenerationDetail{Generation: g, Flashcards: cards}, nil
}

// List implements GenerationService.
func (s *generationService) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.GenerationQuery,
) (*GenerationPage, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	query.Normalize()

	var (
		items []*domain.Generation
		stats domain.GenerationStatistics
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.generations.List(gctx, userID, query)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.generations.Statistics(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, NewServiceError("list_generations", "failed to load generations", err)
	}

	return &GenerationPage{
		Items:      items,
		Pagination: domain.NewPagination(query.Page, query.PageSize, stats.TotalGenerations),
		Statistics: stats,
	}, nil
}

func validateGenerationInput(sourceText, model string) error {
	var errs domain.ValidationErrors
	if n := domain.TextLength(sourceText); n < domain.MinSourceTextLength || n > domain.MaxSourceTextLength {
		errs.Add("sourceText", fmt.Sprintf("must be between %d and %d characters",
			domain.MinSourceTextLength, domain.MaxSourceTextLength))
	}
	if domain.TextLength(model) > domain.MaxModelLength {
		errs.Add("model", fmt.Sprintf("must be at most %d characters", domain.MaxModelLength))
	}
	return errs.ErrOrNil()
}

// classifyProviderError picks the audit code and the user-facing message.
func classifyProviderError(err error) (code, message string) {
	switch {
	case errors.Is(err, generation.ErrProviderUnavailable):
		if generation.IsTimeout(err) {
			return domain.ErrorCodeAPI, MsgProviderTimeout
		}
		return domain.ErrorCodeAPI, MsgProviderUnavailable
	case errors.Is(err, generation.ErrMalformedResponse):
		return domain.ErrorCodeInvalidResponse, MsgMalformedResponse
	case generation.IsTimeout(err):
		return domain.ErrorCodeAPI, MsgProviderTimeout
	default:
		return domain.ErrorCodeGeneration, MsgProviderUnavailable
	}
}
