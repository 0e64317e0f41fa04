package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/subhajit/appointment-booking/internal/api/handler"
	"github.com/subhajit/appointment-booking/internal/api/middleware"
	"github.com/subhajit/appointment-booking/internal/services/auth"
	"github.com/subhajit/appointment-booking/internal/services/doctor"
	"github.com/subhajit/appointment-booking/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	Sessions       *session.Manager
	AllowedOrigins []string

	DoctorService *doctor.Service
	// DoctorsRequireLogin puts doctor create/update/delete behind a logged-in session
	DoctorsRequireLogin bool
}

// NewRouter creates a new API router with all routes configured.
// Recovery, logging and CORS wrap the whole router so they also see
// preflight requests and unmatched routes, which mux middleware never does.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	doctorHandler := handler.NewDoctorHandler(cfg.DoctorService, cfg.Logger)

	// Create middleware
	sessionMiddleware := middleware.Session(cfg.Sessions, cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()

	// Health check endpoint (no session)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Session-aware routes
	sessioned := api.NewRoute().Subrouter()
	sessioned.Use(sessionMiddleware)
	sessioned.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	sessioned.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	sessioned.Handle("/me", middleware.RequireUser(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	// Doctor directory
	api.HandleFunc("/doctors", doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", doctorHandler.Get).Methods(http.MethodGet)

	writes := api.NewRoute().Subrouter()
	if cfg.DoctorsRequireLogin {
		writes.Use(sessionMiddleware, middleware.RequireUserJSON)
	}
	writes.HandleFunc("/doctors", doctorHandler.Create).Methods(http.MethodPost)
	writes.HandleFunc("/doctors/{id}", doctorHandler.Update).Methods(http.MethodPut)
	writes.HandleFunc("/doctors/{id}", doctorHandler.Delete).Methods(http.MethodDelete)

	var h http.Handler = r
	h = middleware.CORS(cfg.AllowedOrigins)(h)
	h = middleware.Logging(cfg.Logger)(h)
	h = middleware.Recovery(cfg.Logger)(h)
	return h
}
