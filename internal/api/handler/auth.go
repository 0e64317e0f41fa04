package handler

import (
	"log/slog"
	"net/http"

	"github.com/subhajit/appointment-booking/internal/api/apierr"
	"github.com/subhajit/appointment-booking/internal/api/middleware"
	"github.com/subhajit/appointment-booking/internal/api/request"
	"github.com/subhajit/appointment-booking/internal/api/response"
	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/services/auth"
)

// maxLoginBody caps the login request body
const maxLoginBody = 1 << 16

// AuthHandler handles login, logout and current-user endpoints
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /api/login.
// A body that does not decode is treated like a wrong credential pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := request.DecodeLoginRequest(http.MaxBytesReader(w, r.Body, maxLoginBody))
	if err != nil {
		apierr.WriteError(w, model.ErrInvalidCredentials)
		return
	}

	sess := middleware.MustGetSession(r.Context())
	if _, err := h.authService.Login(r.Context(), req.Credentials(), sess); err != nil {
		h.writeError(w, err)
		return
	}

	if err := sess.Save(w); err != nil {
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, response.LoginSuccessful)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())
	sess.Clear()

	if err := sess.Save(w); err != nil {
		h.logger.Error("failed to clear session", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Me handles GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Me{Username: middleware.GetUsername(r.Context())})
}

func (h *AuthHandler) writeError(w http.ResponseWriter, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("login failed", slog.String("error", err.Error()))
	}
	apierr.WriteError(w, err)
}
