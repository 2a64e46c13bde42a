package authapi

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// ErrConfig reports invalid auth API configuration.
var ErrConfig = errors.New("authapi: invalid config")

// Config controls cookie transport and request limits.
type Config struct {
	AccessCookieName  string
	RefreshCookieName string
	CookiePath        string
	CookieDomain      string
	CookieSecure      bool
	CookieSameSite    http.SameSite

	// CookieHashKey signs cookie values. Required, at least 32 bytes.
	CookieHashKey []byte

	MaxBodyBytes int64
	PasswordCost int
}

// DefaultConfig returns the config defaults. CookieHashKey must still be set.
func DefaultConfig() Config {
	return Config{
		AccessCookieName:  "access_token",
		RefreshCookieName: "refresh_token",
		CookiePath:        "/",
		CookieSecure:      false,
		CookieSameSite:    http.SameSiteStrictMode,
		MaxBodyBytes:      1 << 20, // 1 MiB
		PasswordCost:      10,
	}
}

// LoadConfigFromEnv loads auth API config from environment variables.
// GATEHOUSE_COOKIE_SECRET is required; GATEHOUSE_ENV=production forces
// Secure cookies.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("GATEHOUSE_ACCESS_COOKIE_NAME")); v != "" {
		cfg.AccessCookieName = v
	}
	if v := strings.TrimSpace(os.Getenv("GATEHOUSE_REFRESH_COOKIE_NAME")); v != "" {
		cfg.RefreshCookieName = v
	}
	if v := strings.TrimSpace(os.Getenv("GATEHOUSE_COOKIE_PATH")); v != "" {
		cfg.CookiePath = v
	}
	cfg.CookieDomain = strings.TrimSpace(os.Getenv("GATEHOUSE_COOKIE_DOMAIN"))

	if strings.EqualFold(strings.TrimSpace(os.Getenv("GATEHOUSE_ENV")), "production") {
		cfg.CookieSecure = true
	}
	if v := strings.TrimSpace(os.Getenv("GATEHOUSE_COOKIE_SECURE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CookieSecure = b
		}
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GATEHOUSE_COOKIE_SAMESITE"))) {
	case "", "strict":
		cfg.CookieSameSite = http.SameSiteStrictMode
	case "lax":
		cfg.CookieSameSite = http.SameSiteLaxMode
	default:
		return Config{}, ErrConfig
	}

	cfg.CookieHashKey = []byte(os.Getenv("GATEHOUSE_COOKIE_SECRET"))

	if v := strings.TrimSpace(os.Getenv("GATEHOUSE_MAX_BODY_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, ErrConfig
		}
		cfg.MaxBodyBytes = n
	}
	if v := strings.TrimSpace(os.Getenv("GATEHOUSE_PASSWORD_COST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, ErrConfig
		}
		cfg.PasswordCost = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the cookie transport depends on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AccessCookieName) == "" || strings.TrimSpace(c.RefreshCookieName) == "" {
		return ErrConfig
	}
	if c.AccessCookieName == c.RefreshCookieName {
		return ErrConfig
	}
	if len(c.CookieHashKey) < 32 {
		return ErrConfig
	}
	if c.MaxBodyBytes <= 0 {
		return ErrConfig
	}
	return nil
}
