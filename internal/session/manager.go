// Package session exposes the server-side session as the small capability
// surface the login flow needs, on top of any gorilla/sessions store.
package session

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// DefaultName is the cookie name used for the session
const DefaultName = "BOOKINGSESSION"

// userKey is the session attribute holding the authenticated username
const userKey = "user"

// Options controls the cookie attached to every session
type Options struct {
	Name     string
	MaxAge   int // seconds
	Secure   bool
	SameSite http.SameSite
}

// Manager opens sessions for requests
type Manager struct {
	store sessions.Store
	opts  Options
}

// NewManager creates a Manager over the given store
func NewManager(store sessions.Store, opts Options) *Manager {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	return &Manager{
		store: store,
		opts:  opts,
	}
}

// Name returns the session cookie name
func (m *Manager) Name() string {
	return m.opts.Name
}

// Open returns the session for the request. A cookie that fails to decode
// (tampered, signed with another key, expired) yields a fresh empty session;
// only store failures are returned as errors.
func (m *Manager) Open(r *http.Request) (*Handle, error) {
	s, err := m.store.Get(r, m.opts.Name)
	if err != nil && !isDecodeError(err) {
		return nil, err
	}
	if s == nil {
		s = sessions.NewSession(m.store, m.opts.Name)
		s.IsNew = true
	}

	s.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   m.opts.MaxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}

	return &Handle{session: s, request: r}, nil
}

func isDecodeError(err error) bool {
	var scErr securecookie.Error
	return errors.As(err, &scErr) && scErr.IsDecode()
}

// Handle is one request's view of its session
type Handle struct {
	session *sessions.Session
	request *http.Request
}

// SetAuthenticatedUser records the authenticated username in the session
func (h *Handle) SetAuthenticatedUser(username string) {
	h.session.Values[userKey] = username
}

// AuthenticatedUser returns the username recorded by a successful login
func (h *Handle) AuthenticatedUser() (string, bool) {
	username, ok := h.session.Values[userKey].(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// Clear drops every value and marks the session for deletion on Save
func (h *Handle) Clear() {
	h.session.Values = map[interface{}]interface{}{}
	h.session.Options.MaxAge = -1
}

// IsNew reports whether the request carried no usable session
func (h *Handle) IsNew() bool {
	return h.session.IsNew
}

// Save persists the session and writes its cookie
func (h *Handle) Save(w http.ResponseWriter) error {
	return h.session.Save(h.request, w)
}
