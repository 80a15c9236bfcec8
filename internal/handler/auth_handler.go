package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/apperr"
	"taskboard/internal/service"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: err.Error()})
	}

	token, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		status, body := apperr.MapToHTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Login godoc
// @Summary Login a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: err.Error()})
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		status, body := apperr.MapToHTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
