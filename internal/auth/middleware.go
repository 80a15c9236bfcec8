package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskboard/internal/apperr"
)

// userIDKey is the echo context key the middleware stores the owner id under.
const userIDKey = "authUserID"

// Middleware returns the bearer-token gate for protected routes. It verifies
// the Authorization header, stashes the authenticated user id in the request
// context and rejects everything else with 401 before the handler or the
// request body is touched.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(Claims)
		},
		SuccessHandler: func(c echo.Context) {
			token, _ := c.Get("user").(*jwt.Token)
			if token == nil {
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return
			}
			if id, err := claims.UserUUID(); err == nil {
				SetUserID(c, id)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Msg: "Unauthorized"})
		},
	})
}

// SetUserID stores the authenticated user id in the request context.
func SetUserID(c echo.Context, id uuid.UUID) {
	c.Set(userIDKey, id)
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userIDKey).(uuid.UUID)
	return id, ok
}
