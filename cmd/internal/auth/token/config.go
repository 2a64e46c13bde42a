package token

import (
	"crypto/subtle"
	"os"
	"time"
)

// Config defines runtime configuration for the token issuer.
//
// The two secrets are independent on purpose: compromise of one must not
// compromise the other.
type Config struct {
	// AccessSecret signs access tokens (HS256).
	AccessSecret []byte

	// RefreshSecret signs refresh tokens (HS256). Must differ from AccessSecret.
	RefreshSecret []byte

	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration

	// RefreshTTL is the refresh token lifetime. Must exceed AccessTTL.
	RefreshTTL time.Duration
}

// DefaultConfig returns default lifetimes; secrets must always be supplied.
func DefaultConfig() Config {
	return Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Required:
//   - GATEHOUSE_ACCESS_TOKEN_SECRET
//   - GATEHOUSE_REFRESH_TOKEN_SECRET
//
// Optional (durations must be valid Go duration strings):
//   - GATEHOUSE_ACCESS_TOKEN_TTL
//   - GATEHOUSE_REFRESH_TOKEN_TTL
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("GATEHOUSE_ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTTL = d
	}

	if v := os.Getenv("GATEHOUSE_REFRESH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTTL = d
	}

	cfg.AccessSecret = []byte(os.Getenv("GATEHOUSE_ACCESS_TOKEN_SECRET"))
	cfg.RefreshSecret = []byte(os.Getenv("GATEHOUSE_REFRESH_TOKEN_SECRET"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the configuration invariants.
func (c Config) Validate() error {
	// Minimum 32 bytes for an HMAC-SHA256 secret; measured in bytes, not runes.
	if len(c.AccessSecret) < 32 || len(c.RefreshSecret) < 32 {
		return ErrConfig
	}
	if len(c.AccessSecret) == len(c.RefreshSecret) &&
		subtle.ConstantTimeCompare(c.AccessSecret, c.RefreshSecret) == 1 {
		return ErrConfig
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return ErrConfig
	}
	if c.RefreshTTL <= c.AccessTTL {
		return ErrConfig
	}
	return nil
}
