package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const bcryptCost = 10

// AuthService handles signup and login.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Signup registers a new user and returns a bearer token for them. The unique
// email index is the arbiter for duplicates; there is no find-then-insert
// pre-check, so two concurrent signups with the same email cannot both
// succeed. The token is issued only after the insert is confirmed.
func (s *authService) Signup(ctx context.Context, name, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperr.ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user.ID)
}

// Login checks credentials and returns a bearer token. The unknown-email and
// wrong-password failures keep distinct messages per the API contract.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.ErrUnknownEmail
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.ErrWrongPassword
	}

	return s.tokens.Issue(user.ID)
}
