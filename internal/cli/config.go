package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	Cookie     string
	CookieFile string
	Origin     string
	Output     string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("BOOKING_SERVER", "http://localhost:8080"),
		Cookie:     os.Getenv("BOOKING_COOKIE"),
		CookieFile: getEnvOrDefault("BOOKING_COOKIE_FILE", defaultCookieFile()),
		Origin:     os.Getenv("BOOKING_ORIGIN"),
		Output:     "text",
	}
}

// LoadCookie loads the session cookie from file if not already set
func (c *Config) LoadCookie() error {
	if c.Cookie != "" {
		return nil
	}

	data, err := os.ReadFile(c.CookieFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // Not logged in yet
		}
		return err
	}

	c.Cookie = strings.TrimSpace(string(data))
	return nil
}

// SaveCookie saves the session cookie to the cookie file
func (c *Config) SaveCookie(value string) error {
	c.Cookie = value

	dir := filepath.Dir(c.CookieFile)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	return os.WriteFile(c.CookieFile, []byte(value), 0o600)
}

// ClearCookie forgets the session cookie and removes the cookie file
func (c *Config) ClearCookie() error {
	c.Cookie = ""
	if err := os.Remove(c.CookieFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func defaultCookieFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bookingctl/cookie"
	}
	return filepath.Join(home, ".bookingctl", "cookie")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
