package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/api/metrics"
	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken    string `json:"idToken"`
	Credential string `json:"credential"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type authResponse struct {
	Success bool                  `json:"success"`
	Token   string                `json:"token,omitempty"`
	User    *domain.PublicProfile `json:"user,omitempty"`
}

func authSuccess(c echo.Context, status int, res *ports.AuthResult) error {
	return c.JSON(status, authResponse{Success: true, Token: res.Token, User: domain.ToPublicProfile(res.User)})
}

func recordAuth(method string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.AuthEventsTotal.WithLabelValues(method, result).Inc()
}

// Register creates a new local account and returns a token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	recordAuth("register", err)
	if err != nil {
		return err
	}
	return authSuccess(c, http.StatusCreated, res)
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	recordAuth("login", err)
	if err != nil {
		return err
	}
	return authSuccess(c, http.StatusOK, res)
}

// Google exchanges a Google ID token for an API token.
//
// @Summary      Sign in with Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Google ID token (idToken or credential)"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/google [post]
func (h *AuthHandler) Google(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	token := req.IDToken
	if token == "" {
		token = req.Credential
	}
	if token == "" {
		return domain.NewValidationError("idToken", "idToken is required")
	}

	res, err := h.authService.GoogleLogin(c.Request().Context(), token)
	recordAuth("google", err)
	if err != nil {
		return err
	}
	return authSuccess(c, http.StatusOK, res)
}

// Me returns the caller's profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true, User: domain.ToPublicProfile(user)})
}

// UpdateProfile edits the caller's profile fields. Email and password are not
// changeable here.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req domain.ProfileUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true, User: domain.ToPublicProfile(user)})
}

// ChangePassword verifies the current password and stores a new one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token})
}
