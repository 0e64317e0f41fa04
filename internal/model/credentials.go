package model

// Credentials is the username/password pair submitted with a login request.
// It lives only for the duration of the request and is never stored.
type Credentials struct {
	Username string
	Password string
}

// Identity is what a successful credential check resolves to
type Identity struct {
	Username string
}
