package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_ParseRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("test-secret")

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret")
		token, err := other.Issue(uuid.New())
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			UserID: uuid.NewString(),
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{
			UserID: uuid.NewString(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
