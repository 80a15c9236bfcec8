package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenExpiry is the lifetime of issued bearer tokens.
const TokenExpiry = time.Hour

// ErrInvalidToken covers every verification failure. Callers get no
// distinction between forged, malformed and expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user identity inside a JWT.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// UserUUID parses the user id claim.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TokenService issues and verifies signed bearer tokens. The signing secret
// is injected once at construction; there is no rotation.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token for the user, valid for TokenExpiry.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and returns its claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
