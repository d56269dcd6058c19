package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/KKuznik/10x-cards/internal/redact"
	"github.com/KKuznik/10x-cards/internal/service/auth"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
)

// DeleteConfirmation must be typed by the user to delete their account.
const DeleteConfirmation = "DELETE"

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *domain.User
	Token auth.Token
}

// UserService registers users and issues access tokens.
type UserService interface {
	// Register creates a user and signs them in. Returns
	// store.ErrEmailExists when the email is taken.
	Register(ctx context.Context, email, password string) (*AuthResult, error)

	// Login checks credentials. Unknown emails and wrong passwords both
	// return ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Logout records the sign-out. Tokens are stateless and stay valid
	// until they expire.
	Logout(ctx context.Context, userID uuid.UUID) error

	// DeleteAccount removes the user and, by cascade, everything they own.
	DeleteAccount(ctx context.Context, userID uuid.UUID, password, confirmation string) error
}

type userService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger
}

var _ UserService = (*userService)(nil)

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if hasher == nil || tokens == nil {
		return nil, errors.New("auth collaborators cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.
func (s *userService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = domain.NormalizeEmail(email)
	var errs domain.ValidationErrors
	if !domain.IsValidEmail(email) {
		errs.Add("email", "must be a valid email address")
	}
	if !domain.IsStrongPassword(password) {
		errs.Add("password", fmt.Sprintf(
			"must be %d-%d characters and contain upper and lower case letters, a digit and a special character",
			domain.MinPasswordLength, domain.MaxPasswordLength))
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, NewServiceError("register", "failed to hash password", err)
	}

	user, err := domain.NewUser(email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration rejected: email exists")
			return nil, store.ErrEmailExists
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("register", "failed to create user", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, NewServiceError("register", "failed to issue token", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return &AuthResult{User: user, Token: token}, nil
}

// Login implements UserService.
func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("login", "failed to load user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, NewServiceError("login", "failed to issue token", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return &AuthResult{User: user, Token: token}, nil
}

// Logout implements UserService.
func (s *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrInvalidUser
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("user logged out",
		slog.String("user_id", userID.String()))
	return nil
}

// DeleteAccount implements UserService.
func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID, password, confirmation string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return ErrInvalidUser
	}
	if confirmation != DeleteConfirmation {
		return ErrInvalidConfirmation
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return NewServiceError("delete_account", "failed to load user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Warn("account deletion rejected: password mismatch", slog.String("user_id", userID.String()))
		return ErrInvalidCredentials
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return NewServiceError("delete_account", "failed to delete user", err)
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))
	return nil
}
