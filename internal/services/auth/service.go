package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/subhajit/appointment-booking/internal/model"
)

// SessionHandle is the one capability login needs from a web session
type SessionHandle interface {
	SetAuthenticatedUser(username string)
}

// Service handles login against a single credential verifier
type Service struct {
	verifier Verifier
	logger   *slog.Logger
}

// New creates a new auth Service
func New(verifier Verifier, logger *slog.Logger) *Service {
	return &Service{
		verifier: verifier,
		logger:   logger,
	}
}

// Login verifies the credential pair and, on success, marks the session as
// authenticated for that username. On rejection the session is left untouched.
func (s *Service) Login(ctx context.Context, creds model.Credentials, session SessionHandle) (*model.Identity, error) {
	identity, err := s.verifier.Verify(ctx, creds)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			s.logger.Debug("login rejected", slog.String("username", creds.Username))
		}
		return nil, err
	}

	session.SetAuthenticatedUser(identity.Username)
	s.logger.Info("login succeeded", slog.String("username", identity.Username))

	return identity, nil
}
