package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLen = 255
	minPassword = 8
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user with a bcrypt hash of the password. Email
// comparison is deliberately case-sensitive, matching the store's unique
// index.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPassword {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPassword)
	}

	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created := &User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}

// Authenticate verifies the password against the stored hash. bcrypt's
// comparison is constant-time.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	found, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return found, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func validateEmail(email string) error {
	if email == "" || len(email) > maxEmailLen {
		return fmt.Errorf("%w: email is required and must be at most %d characters", ErrInvalidInput, maxEmailLen)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	return nil
}
