package redis

import "time"

// Config holds Redis connection and session behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SessionTTL applies to sessions saved with MaxAge 0 (browser-session cookies),
	// which would otherwise never leave Redis
	SessionTTL time.Duration

	// MaxAge is the default cookie lifetime in seconds for new sessions
	MaxAge int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   24 * time.Hour,
		MaxAge:       1800,
	}
}
