package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"awguestbook/internal/delivery/http/helpers"
	"awguestbook/internal/delivery/http/middleware"
	"awguestbook/internal/domain"
)

// RegisterRequest is the request body for POST /api/auth?action=register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the request body for POST /api/auth?action=login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the request body for POST /api/auth?action=forgot.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the request body for POST /api/auth?action=reset.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// AuthPayload is the data payload of a successful login or registration.
// Token is a bearer token for non-browser clients; browser clients rely on
// the session cookie instead.
type AuthPayload struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// CheckPayload is the data payload for GET /api/auth?action=check.
type CheckPayload struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

type AuthController struct {
	Logger        *slog.Logger
	Service       domain.AuthService
	SecureCookies bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, secureCookies bool) *AuthController {
	return &AuthController{
		Logger:        logger,
		Service:       svc,
		SecureCookies: secureCookies,
	}
}

// Get godoc
// @Summary Auth status and current user
// @Description action=check reports whether the caller is authenticated (200 either way); action=user returns the current account and requires authentication.
// @Tags auth
// @Produce json
// @Param action query string true "check or user"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /api/auth [get]
func (c *AuthController) Get(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "check":
		c.check(w, r)
	case "user":
		c.currentUser(w, r)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown action")
	}
}

// Post godoc
// @Summary Login, registration, logout, and password reset
// @Description Dispatches on the action query parameter: login, register, logout, forgot, reset.
// @Tags auth
// @Accept json
// @Produce json
// @Param action query string true "login, register, logout, forgot, or reset"
// @Success 200 {object} helpers.APIResponse
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /api/auth [post]
func (c *AuthController) Post(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "login":
		c.login(w, r)
	case "register":
		c.register(w, r)
	case "logout":
		c.logout(w, r)
	case "forgot":
		c.forgotPassword(w, r)
	case "reset":
		c.resetPassword(w, r)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown action")
	}
}

func (c *AuthController) check(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteSuccess(w, http.StatusOK, CheckPayload{Authenticated: false})
		return
	}
	user, err := c.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, CheckPayload{Authenticated: true, User: user})
}

func (c *AuthController) currentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, user)
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	result, err := c.Service.Register(r.Context(), domain.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.setSessionCookie(w, result.Session)
	helpers.WriteSuccessMessage(w, http.StatusCreated,
		AuthPayload{User: result.User, Token: result.APIToken}, "account created")
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.setSessionCookie(w, result.Session)
	helpers.WriteSuccess(w, http.StatusOK, AuthPayload{User: result.User, Token: result.APIToken})
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := c.Service.Logout(r.Context(), cookie.Value); err != nil {
			writeServiceError(w, r, c.Logger, err)
			return
		}
	}
	c.clearSessionCookie(w)
	helpers.WriteSuccessMessage(w, http.StatusOK, nil, "logged out")
}

func (c *AuthController) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if err := c.Service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	// Same response whether or not the account exists.
	helpers.WriteSuccessMessage(w, http.StatusOK, nil, "if the email is registered, a reset link has been sent")
}

func (c *AuthController) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if err := c.Service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, nil, "password updated")
}

func (c *AuthController) setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
