package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subhajit/appointment-booking/internal/api"
	"github.com/subhajit/appointment-booking/internal/api/response"
	"github.com/subhajit/appointment-booking/internal/config"
	"github.com/subhajit/appointment-booking/internal/factory"
	"github.com/subhajit/appointment-booking/internal/session"
	"github.com/subhajit/appointment-booking/internal/testutil"
)

const allowedOrigin = "http://localhost:3000"

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	logger := testutil.NopLogger()

	app, err := factory.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		Sessions:       app.Sessions,
		AllowedOrigins: cfg.AllowedOrigins,

		DoctorService:       app.DoctorService,
		DoctorsRequireLogin: cfg.DoctorsRequireLogin,
	})

	return &testServer{handler: router}
}

type requestOpts struct {
	body   string
	cookie *http.Cookie
	origin string
}

func (ts *testServer) request(method, path string, opts requestOpts) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(opts.body))
	req.Header.Set("Content-Type", "application/json")
	if opts.cookie != nil {
		req.AddCookie(opts.cookie)
	}
	if opts.origin != "" {
		req.Header.Set("Origin", opts.origin)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func loginBody(username, password string) string {
	b, _ := json.Marshal(map[string]string{"username": username, "password": password})
	return string(b)
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.DefaultName {
			return c
		}
	}
	return nil
}

// login performs a successful login and returns the session cookie
func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit")})
	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	return cookie
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.request(http.MethodGet, "/api/health", requestOpts{})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestLoginSucceeds(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit")})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Login successful", rr.Body.String())
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain"))

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginSetsSessionMarker(t *testing.T) {
	ts := newTestServer(t, nil)
	cookie := ts.login(t)

	rr := ts.request(http.MethodGet, "/api/me", requestOpts{cookie: cookie})
	assert.Equal(t, http.StatusOK, rr.Code)

	var me response.Me
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "subhajit", me.Username)
}

func TestLoginRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong password", loginBody("subhajit", "wrong")},
		{"wrong username", loginBody("wrong", "subhajit")},
		{"both empty", loginBody("", "")},
		{"username case differs", loginBody("Subhajit", "subhajit")},
		{"missing password", `{"username":"subhajit"}`},
		{"missing username", `{"password":"subhajit"}`},
		{"empty object", `{}`},
		{"null body", `null`},
		{"empty body", ``},
		{"malformed json", `{"username":`},
		{"non-string field", `{"username":"subhajit","password":42}`},
		{"upper case keys", `{"USERNAME":"subhajit","PASSWORD":"subhajit"}`},
		{"title case keys", `{"Username":"subhajit","Password":"subhajit"}`},
		{"other-case duplicate after wrong value", `{"username":"wrong","Username":"subhajit","password":"subhajit"}`},
		{"null password", `{"username":"subhajit","password":null}`},
	}

	ts := newTestServer(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: tt.body})

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Invalid credentials", rr.Body.String())
			assert.Nil(t, sessionCookie(rr), "rejected login must not touch the session")
		})
	}
}

func TestFailedLoginLeavesExistingSessionUnmodified(t *testing.T) {
	ts := newTestServer(t, nil)
	cookie := ts.login(t)

	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "wrong"), cookie: cookie})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, sessionCookie(rr))

	rr = ts.request(http.MethodGet, "/api/me", requestOpts{cookie: cookie})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRepeatedLoginsSucceed(t *testing.T) {
	ts := newTestServer(t, nil)

	for range 5 {
		rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "wrong")})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	}
	for range 5 {
		rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit")})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Login successful", rr.Body.String())
	}
}

func TestMeWithoutSession(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.request(http.MethodGet, "/api/me", requestOpts{})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Unauthorized", rr.Body.String())
}

func TestLogoutClearsSession(t *testing.T) {
	ts := newTestServer(t, nil)
	cookie := ts.login(t)

	rr := ts.request(http.MethodPost, "/api/logout", requestOpts{cookie: cookie})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	cleared := sessionCookie(rr)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	// The browser would drop the cookie; replaying the cleared value must not authenticate
	rr = ts.request(http.MethodGet, "/api/me", requestOpts{cookie: cleared})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginWrongMethod(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.request(http.MethodGet, "/api/login", requestOpts{})
	assert.NotEqual(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, "Login successful", rr.Body.String())
}

// CORS boundary

func TestLoginFromAllowedOrigin(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit"), origin: allowedOrigin})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, allowedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLoginFromOtherOriginRejectedByTransport(t *testing.T) {
	ts := newTestServer(t, nil)

	// Valid credentials, wrong origin: rejected before the handler runs
	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit"), origin: "http://evil.example"})

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Nil(t, sessionCookie(rr))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflightForLogin(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, allowedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

// Alternate configurations

func TestConfiguredCredentialPair(t *testing.T) {
	cfg := config.Default()
	cfg.Login = config.LoginConfig{Username: "admin", Password: "s3cret"}
	ts := newTestServer(t, cfg)

	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("admin", "s3cret")})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit")})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRedisBackedSessions(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Session.Store = config.StoreTypeRedis
	cfg.RedisURL = "redis://" + mini.Addr() + "/0"
	ts := newTestServer(t, cfg)

	cookie := ts.login(t)
	assert.Len(t, mini.Keys(), 1)

	rr := ts.request(http.MethodGet, "/api/me", requestOpts{cookie: cookie})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "subhajit")

	rr = ts.request(http.MethodPost, "/api/logout", requestOpts{cookie: cookie})
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, mini.Keys())

	// Server-side deletion means the old cookie no longer authenticates
	rr = ts.request(http.MethodGet, "/api/me", requestOpts{cookie: cookie})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRedisOutageIsInternalError(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Session.Store = config.StoreTypeRedis
	cfg.RedisURL = "redis://" + mini.Addr() + "/0"
	ts := newTestServer(t, cfg)

	mini.SetError("down")

	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: loginBody("subhajit", "subhajit")})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", rr.Body.String())
}

func TestLoginBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, nil)

	big := `{"username":"subhajit","password":"` + string(bytes.Repeat([]byte("a"), 1<<17)) + `"}`
	rr := ts.request(http.MethodPost, "/api/login", requestOpts{body: big})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
