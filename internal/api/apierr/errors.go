package apierr

import (
	"errors"
	"net/http"

	"github.com/subhajit/appointment-booking/internal/api/response"
	"github.com/subhajit/appointment-booking/internal/model"
)

// Auth endpoint bodies are plain text, matching what the login form expects
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized"
	MsgForbiddenOrigin    = "Forbidden origin"
	MsgInternalError      = "Internal server error"
)

// Error codes carried in JSON error bodies
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbiddenOrigin    = "FORBIDDEN_ORIGIN"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeDoctorNotFound     = "DOCTOR_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError is the JSON error body of the doctor endpoints
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes a plain-text error response
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.Text(w, he.status, he.apiError.Message)
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, he.apiError)
}

// Status returns the HTTP status code err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, firstMessage(verr.Fields), verr.Fields}}
	}

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: MsgInvalidCredentials}}
	case errors.Is(err, model.ErrNotAuthenticated):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: MsgUnauthorized}}
	case errors.Is(err, model.ErrDoctorNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeDoctorNotFound, Message: "Doctor not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: MsgInternalError}}
	}
}

// firstMessage picks a stable summary message for a validation failure
func firstMessage(fields map[string]string) string {
	for _, name := range []string{"doctorName", "contact", "address", "timing", "availableDays"} {
		if msg, ok := fields[name]; ok {
			return msg
		}
	}
	return "Invalid request"
}

// NewForbiddenOriginError creates the error for a cross-origin request from an unlisted origin
func NewForbiddenOriginError() error {
	return &httpError{http.StatusForbidden, APIError{Code: CodeForbiddenOrigin, Message: MsgForbiddenOrigin}}
}

// NewInvalidRequestError creates a 400 error for a body or parameter that cannot be read
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: MsgInternalError}}
}
