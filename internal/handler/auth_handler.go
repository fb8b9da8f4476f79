package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ktucyber/internal/auth"
	"ktucyber/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	session     *auth.Session
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, session *auth.Session) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

// SignupRequest represents a user signup request.
type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request. Identifier is email or username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents a password-reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents a password-reset submission.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} Result
// @Failure 400 {object} Result
// @Failure 409 {object} Result
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	res, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	h.session.Establish(c, res.SessionToken)
	return c.JSON(http.StatusCreated, Result{
		Success: true,
		Message: fmt.Sprintf("User created successfully. Please verify your email with the link %s", res.VerificationLink),
		Data:    res.User,
	})
}

// Login godoc
// @Summary Log in with email or username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Failure 404 {object} Result
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return fail(c, err)
	}

	h.session.Establish(c, token)
	return ok(c, "logged in successfully", user)
}

// Logout godoc
// @Summary Log out the current session
// @Tags auth
// @Produce json
// @Success 200 {object} Result
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Clear(c)
	return ok(c, "logged out successfully", nil)
}

// Session godoc
// @Summary Verify the current session
// @Tags auth
// @Produce json
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claims, err := h.session.Current(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, Result{Success: false, Message: "unauthorized"})
	}
	return ok(c, "session valid", claims)
}

// VerifyEmail godoc
// @Summary Verify an email address via token
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Failure 404 {object} Result
// @Router /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "token is required"})
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), token); err != nil {
		return fail(c, err)
	}

	// Force a fresh login so the session picks up the verified flag.
	h.session.Clear(c)
	return ok(c, "email verified successfully", nil)
}

// ForgotPassword godoc
// @Summary Request a password-reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return fail(c, err)
	}
	return ok(c, "password reset link sent", nil)
}

// ResetPassword godoc
// @Summary Reset the password via token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset data"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		return fail(c, err)
	}
	return ok(c, "password reset successfully", nil)
}
