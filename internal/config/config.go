package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Session store backends
const (
	StoreTypeCookie = "cookie"
	StoreTypeRedis  = "redis"
)

// Doctor directory backends
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Defaults for the accepted credential pair
const (
	DefaultLoginUsername = "subhajit"
	DefaultLoginPassword = "subhajit"
	DefaultAllowedOrigin = "http://localhost:3000"
	DefaultSessionKey    = "change-this-session-key"
)

// Config holds runtime settings for the login service
type Config struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LogLevel       string   `yaml:"log_level"`
	RedisURL       string   `yaml:"redis_url"`

	StorageType         string `yaml:"storage_type"`
	DoctorsRequireLogin bool   `yaml:"doctors_require_login"`

	Login   LoginConfig   `yaml:"login"`
	Session SessionConfig `yaml:"session"`
}

// LoginConfig describes the single identity that may log in.
// When PasswordHash is set it takes precedence over Password.
type LoginConfig struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// SessionConfig holds session store and cookie settings
type SessionConfig struct {
	Store          string `yaml:"store"`
	Key            string `yaml:"key"`
	EncryptionKey  string `yaml:"encryption_key"` // 16, 24 or 32 bytes; empty signs without encrypting
	MaxAge         int    `yaml:"max_age"` // seconds
	CookieSecure   bool   `yaml:"cookie_secure"`
	CookieSameSite string `yaml:"cookie_samesite"` // Strict/Lax/None
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Port:           8080,
		AllowedOrigins: []string{DefaultAllowedOrigin},
		LogLevel:       "info",
		RedisURL:       "redis://localhost:6379/0",
		StorageType:    StorageTypeMemory,
		Login: LoginConfig{
			Username: DefaultLoginUsername,
			Password: DefaultLoginPassword,
		},
		Session: SessionConfig{
			Store:          StoreTypeCookie,
			Key:            DefaultSessionKey,
			MaxAge:         1800,
			CookieSameSite: "Lax",
		},
	}
}

// Load reads configuration from defaults, the YAML file named by BOOKING_CONFIG,
// a .env file in the working directory and the process environment, in that order.
func Load() (*Config, error) {
	return LoadFrom(".env", os.Getenv("BOOKING_CONFIG"))
}

// LoadFrom is Load with explicit file locations. Either path may be empty.
// A missing .env file is not an error; a missing YAML file is.
func LoadFrom(dotenvPath, yamlPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		if err := cfg.mergeFile(yamlPath); err != nil {
			return nil, err
		}
	}

	env, err := newEnvSource(dotenvPath)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to start the service
func (c *Config) Validate() error {
	// 0 asks the OS for a free port
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Session.Store {
	case StoreTypeCookie, StoreTypeRedis:
	default:
		return fmt.Errorf("invalid session store %q: must be 'cookie' or 'redis'", c.Session.Store)
	}
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be 'memory' or 'redis'", c.StorageType)
	}
	if c.UsesRedis() && c.RedisURL == "" {
		return errors.New("REDIS_URL required when SESSION_STORE=redis or STORAGE_TYPE=redis")
	}
	if c.Session.Key == "" {
		return errors.New("session key must not be empty")
	}
	switch len(c.Session.EncryptionKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("session encryption key must be 16, 24 or 32 bytes, got %d", len(c.Session.EncryptionKey))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// UsesRedis reports whether any component needs the Redis connection
func (c *Config) UsesRedis() bool {
	return c.Session.Store == StoreTypeRedis || c.StorageType == StorageTypeRedis
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

// KeyPairs returns the securecookie hash key, followed by the block key when encryption is configured
func (s SessionConfig) KeyPairs() [][]byte {
	if s.EncryptionKey == "" {
		return [][]byte{[]byte(s.Key)}
	}
	return [][]byte{[]byte(s.Key), []byte(s.EncryptionKey)}
}

// SameSite returns the cookie SameSite mode, defaulting to Lax
func (s SessionConfig) SameSite() http.SameSite {
	switch strings.ToLower(s.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(env envSource) {
	c.Port = env.intOr("PORT", c.Port)
	if origins := parseCSV(env.get("ALLOWED_ORIGINS")); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	c.LogLevel = env.stringOr("LOG_LEVEL", c.LogLevel)
	c.RedisURL = env.stringOr("REDIS_URL", c.RedisURL)
	c.StorageType = env.stringOr("STORAGE_TYPE", c.StorageType)
	c.DoctorsRequireLogin = env.boolOr("DOCTORS_REQUIRE_LOGIN", c.DoctorsRequireLogin)

	c.Login.Username = env.stringOr("LOGIN_USERNAME", c.Login.Username)
	c.Login.Password = env.stringOr("LOGIN_PASSWORD", c.Login.Password)
	// Set-but-empty clears a hash or encryption key from the YAML file
	c.Login.PasswordHash = env.stringIfSet("LOGIN_PASSWORD_HASH", c.Login.PasswordHash)

	c.Session.Store = env.stringOr("SESSION_STORE", c.Session.Store)
	c.Session.Key = env.stringOr("SESSION_KEY", c.Session.Key)
	c.Session.EncryptionKey = env.stringIfSet("SESSION_ENCRYPTION_KEY", c.Session.EncryptionKey)
	c.Session.MaxAge = env.intOr("SESSION_MAX_AGE", c.Session.MaxAge)
	c.Session.CookieSecure = env.boolOr("COOKIE_SECURE", c.Session.CookieSecure)
	c.Session.CookieSameSite = env.stringOr("COOKIE_SAMESITE", c.Session.CookieSameSite)
}

// envSource resolves variables from the process environment first, then from .env values
type envSource struct {
	dotenv map[string]string
}

func newEnvSource(dotenvPath string) (envSource, error) {
	src := envSource{dotenv: map[string]string{}}
	if dotenvPath == "" {
		return src, nil
	}
	if _, err := os.Stat(dotenvPath); errors.Is(err, os.ErrNotExist) {
		return src, nil
	}
	values, err := godotenv.Read(dotenvPath)
	if err != nil {
		return src, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
	}
	src.dotenv = values
	return src, nil
}

// lookup reports whether key is set at all, even to an empty value
func (e envSource) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e.dotenv[key]
	return v, ok
}

func (e envSource) get(key string) string {
	v, _ := e.lookup(key)
	return v
}

// stringIfSet returns the value of key when it is set, including when set to empty
func (e envSource) stringIfSet(key, current string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return current
}

func (e envSource) stringOr(key, defaultVal string) string {
	if v := e.get(key); v != "" {
		return v
	}
	return defaultVal
}

// intOr reads an int, falling back to defaultVal when empty or invalid
func (e envSource) intOr(key string, defaultVal int) int {
	if v := e.get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// boolOr reads a boolean, falling back to defaultVal when empty or invalid
func (e envSource) boolOr(key string, defaultVal bool) bool {
	if v := e.get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// parseCSV splits a comma-separated list; empty entries are skipped
func parseCSV(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
