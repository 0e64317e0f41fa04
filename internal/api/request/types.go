package request

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/subhajit/appointment-booking/internal/model"
)

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials converts the request into the pair handed to the verifier
func (r LoginRequest) Credentials() model.Credentials {
	return model.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}

// DecodeLoginRequest reads a login body. Keys are matched exactly
// ("Username" is not "username") and both values must be JSON strings.
// Any other shape is model.ErrInvalidCredentials.
func DecodeLoginRequest(r io.Reader) (LoginRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return LoginRequest{}, model.ErrInvalidCredentials
	}

	username, ok := stringField(fields, "username")
	if !ok {
		return LoginRequest{}, model.ErrInvalidCredentials
	}
	password, ok := stringField(fields, "password")
	if !ok {
		return LoginRequest{}, model.ErrInvalidCredentials
	}

	return LoginRequest{Username: username, Password: password}, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
