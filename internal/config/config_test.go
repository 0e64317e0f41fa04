package config

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom("", "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "subhajit", cfg.Login.Username)
	assert.Equal(t, "subhajit", cfg.Login.Password)
	assert.Empty(t, cfg.Login.PasswordHash)
	assert.Equal(t, StoreTypeCookie, cfg.Session.Store)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.False(t, cfg.DoctorsRequireLogin)
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromMissingDotenvIsIgnored(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), ".env"), "")
	require.NoError(t, err)
}

func TestLoadFromMissingYAMLFails(t *testing.T) {
	_, err := LoadFrom("", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "booking.yaml", `
port: 9090
allowed_origins:
  - https://booking.example.com
log_level: debug
login:
  username: admin
  password: secret
session:
  store: redis
  max_age: 60
  cookie_samesite: Strict
`)

	cfg, err := LoadFrom("", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://booking.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "admin", cfg.Login.Username)
	assert.Equal(t, "secret", cfg.Login.Password)
	assert.Equal(t, StoreTypeRedis, cfg.Session.Store)
	assert.Equal(t, 60, cfg.Session.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, cfg.Session.SameSite())
	// Unset keys keep their defaults
	assert.Equal(t, DefaultSessionKey, cfg.Session.Key)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "booking.yaml", "port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("DOCTORS_REQUIRE_LOGIN", "1")

	cfg, err := LoadFrom("", path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, StorageTypeRedis, cfg.StorageType)
	assert.True(t, cfg.DoctorsRequireLogin)
	assert.True(t, cfg.UsesRedis())
}

func TestDotenvSitsBelowEnvironment(t *testing.T) {
	dotenv := writeFile(t, ".env", "LOGIN_USERNAME=fromfile\nLOGIN_PASSWORD=filepass\n")
	t.Setenv("LOGIN_PASSWORD", "envpass")

	cfg, err := LoadFrom(dotenv, "")
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.Login.Username)
	assert.Equal(t, "envpass", cfg.Login.Password)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SESSION_MAX_AGE", "soon")

	cfg, err := LoadFrom("", "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1800, cfg.Session.MaxAge)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"redis store", func(c *Config) { c.Session.Store = StoreTypeRedis }, false},
		{"redis store without url", func(c *Config) {
			c.Session.Store = StoreTypeRedis
			c.RedisURL = ""
		}, true},
		{"unknown store", func(c *Config) { c.Session.Store = "memcached" }, true},
		{"redis doctor storage", func(c *Config) { c.StorageType = StorageTypeRedis }, false},
		{"redis doctor storage without url", func(c *Config) {
			c.StorageType = StorageTypeRedis
			c.RedisURL = ""
		}, true},
		{"unknown storage type", func(c *Config) { c.StorageType = "postgres" }, true},
		{"empty session key", func(c *Config) { c.Session.Key = "" }, true},
		{"port out of range", func(c *Config) { c.Port = 70000 }, true},
		{"negative port", func(c *Config) { c.Port = -1 }, true},
		{"any free port", func(c *Config) { c.Port = 0 }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"aes-256 encryption key", func(c *Config) { c.Session.EncryptionKey = "0123456789abcdef0123456789abcdef" }, false},
		{"short encryption key", func(c *Config) { c.Session.EncryptionKey = "short" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteLaxMode, SessionConfig{}.SameSite())
	assert.Equal(t, http.SameSiteLaxMode, SessionConfig{CookieSameSite: "lax"}.SameSite())
	assert.Equal(t, http.SameSiteNoneMode, SessionConfig{CookieSameSite: "None"}.SameSite())
	assert.Equal(t, http.SameSiteStrictMode, SessionConfig{CookieSameSite: "STRICT"}.SameSite())
}

func TestEmptyEnvClearsYAMLHash(t *testing.T) {
	path := writeFile(t, "booking.yaml", `
login:
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
session:
  encryption_key: 0123456789abcdef
`)
	t.Setenv("LOGIN_PASSWORD_HASH", "")
	t.Setenv("SESSION_ENCRYPTION_KEY", "")
	// Empty means unset for ordinary keys
	t.Setenv("LOGIN_USERNAME", "")

	cfg, err := LoadFrom("", path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Login.PasswordHash)
	assert.Empty(t, cfg.Session.EncryptionKey)
	assert.Equal(t, DefaultLoginUsername, cfg.Login.Username)
}

func TestEmptyEnvShadowsDotenv(t *testing.T) {
	dotenv := writeFile(t, ".env", "LOGIN_PASSWORD_HASH=fromfile\n")
	t.Setenv("LOGIN_PASSWORD_HASH", "")

	cfg, err := LoadFrom(dotenv, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Login.PasswordHash)
}

func TestKeyPairs(t *testing.T) {
	assert.Equal(t, [][]byte{[]byte("hash")}, SessionConfig{Key: "hash"}.KeyPairs())
	assert.Equal(t,
		[][]byte{[]byte("hash"), []byte("0123456789abcdef")},
		SessionConfig{Key: "hash", EncryptionKey: "0123456789abcdef"}.KeyPairs())
}
