package handlers

import (
	"context"
	"net/http"

	"github.com/domlearn/backend/internal/auth"
	"github.com/domlearn/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps the admin session operations
type AuthService interface {
	// Method Login checks the admin credentials and issues a capability token.
	//
	// Wrong credentials are returned as an Unauthorized error together with "nil" value.
	Login(ctx context.Context, login, password string) (*models.Session, error)
	// Method Logout revokes the capability token until it expires.
	Logout(ctx context.Context, token string) error
	// Method Authorize returns an Unauthorized error unless the token is a valid capability.
	Authorize(ctx context.Context, token string) error
}

// AuthHandler handles HTTP requests for the admin session
type AuthHandler struct {
	BaseHandler
	service      AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler.
// secureCookie marks the capability cookie as HTTPS-only.
func NewAuthHandler(svc AuthService, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		service:      svc,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.Session)
	})
}

// Login handles POST /api/v1/auth/login
// @Summary Admin login
// @Description Check the admin credentials and issue a capability token, also set as the admin_token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondAppError(w, r, "decode credentials", err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.RespondAppError(w, r, "login", err)
		return
	}

	auth.SetTokenCookie(w, session.Token, session.ExpiresAt, h.secureCookie)
	h.RespondJSON(w, http.StatusOK, models.LoginResponse{
		OK:        true,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles POST /api/v1/auth/logout
// @Summary Admin logout
// @Description Revoke the presented capability token and clear the admin_token cookie
// @Tags auth
// @Produce json
// @Security AdminToken
// @Success 200 {object} models.OKResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), auth.TokenFromRequest(r)); err != nil {
		h.RespondAppError(w, r, "logout", err)
		return
	}

	auth.ClearTokenCookie(w, h.secureCookie)
	h.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// Session handles GET /api/v1/auth/session
// @Summary Check admin session
// @Description Report whether the presented capability token is valid
// @Tags auth
// @Produce json
// @Security AdminToken
// @Success 200 {object} models.OKResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Authorize(r.Context(), auth.TokenFromRequest(r)); err != nil {
		h.RespondAppError(w, r, "check session", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}
