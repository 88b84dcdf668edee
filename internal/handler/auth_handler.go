package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authbase/internal/apperror"
	"authbase/internal/auth"
	"authbase/internal/model"
	"authbase/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.CookieWriter
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserData wraps the user payload of a success response.
type UserData struct {
	User *model.User `json:"user"`
}

// AuthResponse represents an authentication response. The token is surfaced
// in the body as well as the cookie for clients without a cookie jar.
type AuthResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   UserData `json:"data"`
}

// UserResponse represents a response carrying only the user.
type UserResponse struct {
	Status string   `json:"status"`
	Data   UserData `json:"data"`
}

// MessageResponse represents a plain confirmation response.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} router.ErrorResponse
// @Failure 409 {object} router.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body", err)
	}
	// The validator already returns per-field Validation errors.
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.JSON(http.StatusCreated, AuthResponse{
		Status: "success",
		Token:  token,
		Data:   UserData{User: user},
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} router.ErrorResponse
// @Failure 401 {object} router.ErrorResponse
// @Failure 403 {object} router.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.JSON(http.StatusOK, AuthResponse{
		Status: "success",
		Token:  token,
		Data:   UserData{User: user},
	})
}

// Logout godoc
// @Summary Logout the current user
// @Description Overwrites the token cookie with a short-lived sentinel. The
// @Description issued token itself remains valid until its natural expiry.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} router.ErrorResponse
// @Router /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, MessageResponse{
		Status:  "success",
		Message: "logged out successfully",
	})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} router.ErrorResponse
// @Failure 403 {object} router.ErrorResponse
// @Router /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperror.NewUnauthenticated("no credential provided", nil)
	}
	return c.JSON(http.StatusOK, UserResponse{
		Status: "success",
		Data:   UserData{User: user},
	})
}
