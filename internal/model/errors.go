package model

import "errors"

// Common errors used across the application
var (
	// ErrInvalidCredentials is returned for any credential pair that does not match.
	// Wrong username, wrong password and missing fields are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthenticated is returned when a session carries no authenticated user
	ErrNotAuthenticated = errors.New("not authenticated")

	// Doctor directory errors
	ErrDoctorNotFound = errors.New("doctor not found")
)
