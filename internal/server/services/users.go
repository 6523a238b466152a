// Package services holds the request-independent business logic: account
// signup and login, and the owner-scoped note operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophnotes/internal/server/validation"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type UserService struct {
	repo   users.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	logger logging.Logger
	now    func() time.Time
}

func NewUserService(repo users.Repository, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "users"),
		now:    time.Now,
	}
}

// Signup creates an account and returns a token for it. Invalid input is a
// *validation.Error, a taken username is common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, in validation.UserInput) (string, error) {
	if err := validation.ValidateUser(in); err != nil {
		return "", err
	}

	_, err := s.repo.GetUserByLogin(ctx, in.Username)
	switch {
	case err == nil:
		return "", common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", validation.NewError("password", "max",
				`"password" length must be less than or equal to 72 bytes long`)
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	// the store's unique index still decides when two signups race
	user, err := s.repo.Create(ctx, &models.User{
		UserName:     in.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)

	return s.issue(user.ID)
}

// Login checks credentials and returns a fresh token. Unknown usernames and
// wrong passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, in validation.UserInput) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, in.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return "", common.ErrorInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *UserService) issue(userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}
