package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/KKuznik/10x-cards/internal/config"
	"github.com/KKuznik/10x-cards/internal/generation"
	"github.com/KKuznik/10x-cards/internal/platform/chatcompletion"
	"github.com/KKuznik/10x-cards/internal/platform/gemini"
	"github.com/KKuznik/10x-cards/internal/platform/postgres"
	"github.com/KKuznik/10x-cards/internal/redact"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/KKuznik/10x-cards/internal/service/auth"
	"github.com/KKuznik/10x-cards/internal/store"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	generations service.GenerationService
	flashcards  service.FlashcardService
	users       service.UserService
	models      *service.ModelCatalog
}

// newApplication wires stores, the generation provider and services on top
// of an open database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, logger)
	generationStore := postgres.NewPostgresGenerationStore(db, logger)
	errorLogStore := postgres.NewPostgresGenerationErrorLogStore(db, logger)

	provider, err := newProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	generations, err := service.NewGenerationService(
		provider,
		generationStore,
		flashcardStore,
		errorLogStore,
		service.GenerationOptions{
			DefaultModel: cfg.LLM.DefaultModel,
			MaxRetries:   cfg.LLM.MaxRetries,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	flashcards, err := service.NewFlashcardService(
		flashcardStore,
		generationStore,
		store.DBTransactor{DB: db},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	users, err := service.NewUserService(
		userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		jwtService:  jwtService,
		generations: generations,
		flashcards:  flashcards,
		users:       users,
		models:      service.NewModelCatalog(cfg.LLM.DefaultModel),
	}, nil
}

// newProvider selects the generation backend named by cfg.Provider.
func newProvider(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		p, err := gemini.NewProvider(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		return p, nil
	case "openrouter", "openai":
		opts, err := chatcompletion.OptionsFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid %s provider settings: %w", cfg.Provider, err)
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		c, err := chatcompletion.New(opts, timeout, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", redact.Error(err))
		return
	}
	app.logger.Info("database connection closed")
}
