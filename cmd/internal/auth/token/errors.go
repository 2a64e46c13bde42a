package token

import "errors"

var (
	// ErrTokenInvalid is returned for every verification failure: malformed,
	// bad signature, and expired are deliberately not distinguished.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid token config")
)
