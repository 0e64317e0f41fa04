package redis

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// Store is a gorilla/sessions store that keeps session values in Redis.
// The cookie carries only a signed session ID.
type Store struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
	cfg     Config
}

// Ensure Store implements the sessions.Store interface
var _ sessions.Store = (*Store)(nil)

// New connects to Redis and creates a session store.
// keyPairs are passed to securecookie as in sessions.NewCookieStore.
func New(cfg Config, keyPairs ...[]byte) (*Store, error) {
	client, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client, cfg, keyPairs...), nil
}

// NewWithClient creates a session store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, keyPairs ...[]byte) *Store {
	s := &Store{
		client: client,
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   cfg.MaxAge,
			HttpOnly: true,
		},
		cfg: cfg,
	}
	s.MaxAge(cfg.MaxAge)
	return s
}

// Close closes the Redis connection. When the client is shared, close it once
// through its owner instead.
func (s *Store) Close() error {
	return s.client.Close()
}

// MaxAge sets the default cookie lifetime and the signed-ID validity window
func (s *Store) MaxAge(age int) {
	s.options.MaxAge = age
	for _, c := range s.codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Get returns the session for the request, cached in the request's registry
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or a new one.
// A session is always returned; the error reports why an existing one could not be loaded.
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.codecs...); err != nil {
		return session, err
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	if !found {
		// Expired or deleted on the server; start over with a fresh ID
		session.ID = ""
		return session, nil
	}

	session.IsNew = false
	return session, nil
}

// Save writes the session values to Redis and the signed ID to the cookie.
// MaxAge < 0 deletes both.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(ctx, sessionKey(session.ID)).Err(); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}

	if err := s.save(ctx, session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *Store) save(ctx context.Context, session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if ttl == 0 {
		ttl = s.cfg.SessionTTL
	}

	return s.client.Set(ctx, sessionKey(session.ID), buf.Bytes(), ttl).Err()
}

func (s *Store) load(ctx context.Context, session *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, sessionKey(session.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		return false, fmt.Errorf("decode session: %w", err)
	}
	return true, nil
}

func newSessionID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
