package middleware

import (
	"log/slog"
	"net/http"

	"github.com/subhajit/appointment-booking/internal/api/apierr"
	"github.com/subhajit/appointment-booking/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics become a plain-text 500.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
