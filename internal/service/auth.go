// Package service provides business-logic services for authentication and
// task management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// CreateUser creates a new user record. Returns models.ErrUsernameTaken
	// when the username is already registered.
	CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error)
	// FindByUsername returns the user with the given username, or
	// models.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByID returns the user with the given id, or models.ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// TokenSigner issues signed bearer tokens for a user.
type TokenSigner interface {
	Sign(user *models.User) (string, error)
}

// AuthService implements registration and login on top of a UserRepository
// and a TokenSigner.
type AuthService struct {
	repo   UserRepository
	signer TokenSigner
}

// NewAuthService constructs an AuthService using the provided repository
// and token signer.
func NewAuthService(repo UserRepository, signer TokenSigner) *AuthService {
	return &AuthService{repo: repo, signer: signer}
}

// Register creates a new user with the default role, hashing the password
// with bcrypt, and returns the user together with a freshly signed token.
// A duplicate username propagates models.ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, string(hash), models.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a signed token.
// An unknown username and a wrong password both yield
// models.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}
