package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/subhajit/appointment-booking/internal/api/apierr"
	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/session"
)

type contextKey string

const (
	sessionContextKey  contextKey = "session"
	usernameContextKey contextKey = "username"
)

// Session opens the request's session and stores the handle in the context
func Session(manager *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handle, err := manager.Open(r)
			if err != nil {
				logger.Error("failed to open session", slog.String("error", err.Error()))
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, handle)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests whose session carries no authenticated user
// with a plain-text 401. Must run after Session.
func RequireUser(next http.Handler) http.Handler {
	return requireUser(next, apierr.WriteError)
}

// RequireUserJSON is RequireUser with a JSON error body
func RequireUserJSON(next http.Handler) http.Handler {
	return requireUser(next, apierr.WriteJSONError)
}

func requireUser(next http.Handler, writeError func(http.ResponseWriter, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := MustGetSession(r.Context()).AuthenticatedUser()
		if !ok {
			writeError(w, model.ErrNotAuthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), usernameContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession returns the session handle from the request context
func GetSession(ctx context.Context) *session.Handle {
	handle, _ := ctx.Value(sessionContextKey).(*session.Handle)
	return handle
}

// MustGetSession returns the session handle or panics
func MustGetSession(ctx context.Context) *session.Handle {
	handle := GetSession(ctx)
	if handle == nil {
		panic("no session in context - session middleware not applied?")
	}
	return handle
}

// GetUsername returns the authenticated username set by RequireUser
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}
