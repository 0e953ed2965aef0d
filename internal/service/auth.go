// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier shape:
//
//	Handler (HTTP)     → parses forms, sets cookies, renders pages
//	Service (business) → validates, enforces rules, orchestrates
//	Repository (data)  → reads/writes SQLite
//
// Services accept primitives and return domain errors (apperror), never HTTP
// types. The handlers decide what a given error kind looks like to a browser.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/auth"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/repository"
)

// MaxCredentialLength bounds username, password, and email at registration.
const MaxCredentialLength = 100

// AuthService handles registration, login, and logout.
type AuthService struct {
	users     repository.UserRepository
	sessions  *auth.SessionManager
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions *auth.SessionManager,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new user account.
//
// The only rejected cases are empty fields and a username or email that is
// already taken. The uniqueness check is NOT a SELECT-then-INSERT: the
// repository performs one atomic INSERT and the database's UNIQUE
// constraints decide, so two concurrent registrations of the same username
// cannot both succeed. Either colliding field surfaces as the same
// ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	for field, value := range map[string]string{"username": username, "password": password, "email": email} {
		if len(value) > MaxCredentialLength {
			return nil, apperror.ValidationFailed(field,
				fmt.Sprintf("%s must be %d characters or less", field, MaxCredentialLength))
		}
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login verifies the credentials and, on success, issues a session token.
//
// Both failure modes — unknown username and wrong password — return the same
// ErrUnauthorized so a caller can't probe which usernames exist. The bcrypt
// comparison itself is constant-time.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized("invalid username or password")
		}
		return "", fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized("invalid username or password")
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing session for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}

// Logout revokes the session behind the given token. Always succeeds for an
// unknown token — logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("service/auth: logout: %w", err)
	}
	return nil
}
