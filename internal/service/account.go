// Package service contains the business logic layer: account management and
// the per-user profile (diets and favorites). Services accept primitives and
// context, return domain models and apperror values, and know nothing about
// HTTP — the handler layer owns requests, cookies, and redirects.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/auth"
	"github.com/ahndawn/ReciPlanner/internal/model"
	"github.com/ahndawn/ReciPlanner/internal/repository"
)

// MaxUsernameLength matches the column size the original schema allowed.
const MaxUsernameLength = 200

// AccountService handles registration and login.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with all required
// dependencies. Called from the composition root in internal/server.
func NewAccountService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
//
// Returns apperror.ErrConflict when the username is already taken — the
// UNIQUE constraint in the store is the authority, so two concurrent
// registrations of the same name can't both succeed.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		// Hash only fails for overlong input — before any hashing work.
		return nil, apperror.ValidationFailed("password", "password must be 72 characters or less")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a username/password pair.
//
// Returns apperror.ErrInvalidCredentials both when the username doesn't
// exist and when the password doesn't match — the caller can't tell the two
// apart, so login responses don't confirm which usernames are registered.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.InvalidCredentials()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InvalidCredentials()
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("failed login attempt", slog.String("username", username))
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// LoginOrRegisterGitHub handles the GitHub OAuth callback: first sign-in
// creates an account keyed by the GitHub id (the GitHub login becomes the
// username, suffixed if a local account already owns it), returning sign-ins
// reuse the existing account.
func (s *AccountService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*model.User, error) {
	if ghUser == nil {
		return nil, fmt.Errorf("service: GitHub user must not be nil")
	}

	user := &model.User{
		Username: ghUser.Login,
		GitHubID: &ghUser.ID,
	}
	if err := s.users.UpsertGitHub(ctx, user); err != nil {
		return nil, fmt.Errorf("service: upserting user (githubID=%d): %w", ghUser.ID, err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// GetUserByID returns the account for an internal id. Used to render the
// personalized home page after the middleware validates the session.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service: user id must not be empty")
	}
	return s.users.GetByID(ctx, id)
}
