package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/continuity"
	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/pkg/crypto"
)

// AccountService handles registration and authentication.
type AccountService struct {
	store  *continuity.Controller
	logger zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *continuity.Controller, logger zerolog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger.With().Str("service", "account").Logger(),
	}
}

// RegisterInput contains the data needed to register a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterOutput contains the result of a registration.
type RegisterOutput struct {
	// UserID is the id of the new user. Non-persistent when Degraded.
	UserID int64

	// Degraded is true when the store was unreachable and the success
	// was synthesized; the registration was not durably recorded.
	Degraded bool
}

// Register validates the input, hashes the password and stores the user.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if err := ValidateRegistration(input.Username, input.Email, input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(
		strings.TrimSpace(input.Username),
		strings.TrimSpace(input.Email),
		passwordHash,
	)

	degraded, err := s.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Bool("degraded", degraded).
		Msg("user registered")

	return &RegisterOutput{UserID: user.ID, Degraded: degraded}, nil
}

// LoginInput contains the data needed to authenticate.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the result of an authentication.
type LoginOutput struct {
	// User is the public identity view. Never carries the password hash.
	User domain.UserView

	// Degraded is true when the store was unreachable and the identity
	// was synthesized without password verification.
	Degraded bool
}

// Login authenticates a user and returns its public identity view.
// Whether the username was unknown or the password wrong is not revealed:
// both surface as domain.ErrInvalidCredentials. While the user store is
// unreachable and continuity is enabled, the password is NOT verified and
// a synthesized identity is returned (see package continuity).
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := ValidateLogin(input.Username, input.Password); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)

	user, degraded, err := s.store.FindUserForLogin(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Log but don't expose whether the username exists.
			s.logger.Debug().Str("username", username).Msg("user not found during authentication")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to look up user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !degraded {
		if !crypto.VerifyPassword(input.Password, user.PasswordHash) {
			s.logger.Debug().Str("username", username).Msg("invalid password during authentication")
			return nil, domain.ErrInvalidCredentials
		}
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Bool("degraded", degraded).
		Msg("user authenticated")

	return &LoginOutput{User: user.View(), Degraded: degraded}, nil
}
