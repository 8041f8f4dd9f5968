// Package service — authentication business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/auth"
	"github.com/sakif/portfolio-backend/internal/repository"
)

// AuthService verifies admin credentials and issues access tokens. It sits
// between the login handler and the user repository / auth utilities:
//
//	AuthHandler (HTTP) → AuthService (rules) → UserRepository (DB)
//	                   ↘ TokenService (JWT) + PasswordService (bcrypt)
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// invalidCredentials is the single failure returned for BOTH an unknown
// username and a wrong password. Distinguishing the two would let an
// attacker probe which usernames exist.
func invalidCredentials() *apperror.AppError {
	return apperror.Unauthorized("Invalid username or password")
}

// Login verifies a username/password pair and returns a signed token with an
// 8-hour validity window.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("login attempt for unknown user", slog.String("username", username))
			return "", invalidCredentials()
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Warn("login attempt with wrong password", slog.String("username", username))
		return "", invalidCredentials()
	}

	token, err := s.tokens.Generate(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}

// SeedAdmin ensures the admin account exists, hashing the given plaintext
// from configuration. Called once at startup; a no-op (false, nil) when the
// row is already present, so restarting the server never rewrites the
// password.
func (s *AuthService) SeedAdmin(ctx context.Context, password string) (bool, error) {
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return false, fmt.Errorf("service/auth: hashing admin password: %w", err)
	}

	created, err := s.users.SeedAdmin(ctx, hash)
	if err != nil {
		return false, fmt.Errorf("service/auth: seeding admin: %w", err)
	}

	return created, nil
}
