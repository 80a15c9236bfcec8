package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("successful signup issues verifiable token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		userID := uuid.New()
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*model.User)
				assert.Equal(t, "Alice", user.Name)
				assert.Equal(t, "a@x.com", user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, "pw123", user.PasswordHash)
				user.ID = userID
			}).Return(nil)

		tokens := auth.NewTokenService("test-secret")
		svc := NewAuthService(mockRepo, tokens)

		token, err := svc.Signup(context.Background(), "Alice", "a@x.com", "pw123")
		require.NoError(t, err)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		parsed, err := claims.UserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)

		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email is a conflict and issues no token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(gorm.ErrDuplicatedKey)

		svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))

		token, err := svc.Signup(context.Background(), "Alice", "taken@x.com", "pw123")
		assert.ErrorIs(t, err, apperr.ErrUserExists)
		assert.Empty(t, token)

		status, body := apperr.MapToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "User already exists", body.Msg)
	})

	t.Run("store failure surfaces as internal error with cause", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(errors.New("dial tcp: connection refused"))

		svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))

		token, err := svc.Signup(context.Background(), "Alice", "a@x.com", "pw123")
		require.Error(t, err)
		assert.Empty(t, token)

		status, body := apperr.MapToHTTP(err)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body.Msg)
		assert.Contains(t, body.Error, "connection refused")
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcryptCost)
	require.NoError(t, err)
	userID := uuid.New()
	storedUser := &model.User{
		ID:           userID,
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: string(hash),
	}

	t.Run("unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "nobody@x.com").
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))

		token, err := svc.Login(context.Background(), "nobody@x.com", "pw123")
		assert.ErrorIs(t, err, apperr.ErrUnknownEmail)
		assert.EqualError(t, err, "Credentials does not match")
		assert.Empty(t, token)
	})

	t.Run("wrong password keeps a distinct message", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(storedUser, nil)

		svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))

		token, err := svc.Login(context.Background(), "a@x.com", "wrong")
		assert.ErrorIs(t, err, apperr.ErrWrongPassword)
		assert.EqualError(t, err, "Incorrect password")
		assert.NotEqual(t, apperr.ErrUnknownEmail.Error(), err.Error())
		assert.Empty(t, token)
	})

	t.Run("correct credentials return token for the stored user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(storedUser, nil)

		tokens := auth.NewTokenService("test-secret")
		svc := NewAuthService(mockRepo, tokens)

		token, err := svc.Login(context.Background(), "a@x.com", "pw123")
		require.NoError(t, err)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		parsed, err := claims.UserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("store failure surfaces as internal error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "a@x.com").
			Return(nil, errors.New("dial tcp: connection refused"))

		svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))

		_, err := svc.Login(context.Background(), "a@x.com", "pw123")
		require.Error(t, err)
		status, _ := apperr.MapToHTTP(err)
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}
