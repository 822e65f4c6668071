package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurelia-jewels/storefront-api/internal/api/metrics"
	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

// AuthHandler handles signup, login, logout and profile endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Signup handles POST /api/auth/signup.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return failWith(c, http.StatusBadRequest, err.Error(), "validation_error")
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return fail(c, http.StatusBadRequest, "User already exists")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fail(c, http.StatusBadRequest, "Email and password are required")
		}
		return serverError(c, err, "Server error during signup")
	}

	metrics.UsersRegisteredTotal.Inc()
	return ok(c, http.StatusCreated, authData{Token: token, User: user}, "User registered successfully")
}

// Login handles POST /api/auth/login.
//
// @Summary      Authenticate and obtain a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return failWith(c, http.StatusBadRequest, err.Error(), "validation_error")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			return fail(c, http.StatusBadRequest, "Invalid credentials")
		}
		return serverError(c, err, "Server error during login")
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return ok(c, http.StatusOK, authData{Token: token, User: user}, "User logged in successfully")
}

// Me handles GET /api/auth/me.
//
// @Summary      Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetSelf(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return serverError(c, err, "Server error fetching user data")
	}

	return ok(c, http.StatusOK, user, "User data fetched successfully")
}

// Logout handles POST /api/auth/logout. The presented token is revoked until
// its natural expiry.
//
// @Summary      Revoke the presented token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}

	jti, exp := tokenInfo(c)
	if jti != "" {
		if err := h.authService.Logout(c.Request().Context(), jti, exp); err != nil {
			return serverError(c, err, "Server error during logout")
		}
	}

	return ok(c, http.StatusOK, nil, "User logged out successfully")
}

// UpdateProfile handles PUT /api/users/:id.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/users/{id} [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), id, c.Param("id"), ports.ProfileUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return fail(c, http.StatusForbidden, "Unauthorized to update this user profile")
		case errors.Is(err, domain.ErrUserNotFound):
			return fail(c, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidID):
			return fail(c, http.StatusBadRequest, "Invalid user ID")
		}
		return serverError(c, err, "Server error updating user profile")
	}

	return ok(c, http.StatusOK, user, "User profile updated successfully")
}
