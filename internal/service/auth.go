// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carhub/carhub/internal/auth"
	"github.com/carhub/carhub/internal/metrics"
	"github.com/carhub/carhub/internal/model"
	"github.com/carhub/carhub/internal/repository"
)

// Credential service errors.
var (
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
)

// registerTokenTTL is the validity of tokens issued at signup.
// Login tokens carry no expiry.
const registerTokenTTL = time.Hour

// UserStore is the account persistence needed by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService registers accounts and issues bearer tokens.
type AuthService struct {
	users   UserStore
	secret  []byte
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret []byte, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		secret:  secret,
		metrics: recorder,
	}
}

// Register creates a new account and returns a signed bearer token with
// a 1-hour expiry. The password is stored only as a salted hash.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", ErrMissingFields
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.secret, registerTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.metrics.IncSignup()

	return token, nil
}

// Login verifies credentials and returns a signed bearer token without
// an expiry. Unknown email and wrong password produce the same error so
// accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingFields
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncAuthFailure()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.metrics.IncAuthFailure()
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.secret, 0)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.metrics.IncLogin()

	return token, nil
}
