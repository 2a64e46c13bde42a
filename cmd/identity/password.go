package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordCost is the floor for bcrypt cost. Costs below it are clamped up,
// never down: interactive login hashing at less than 10 is not acceptable.
const MinPasswordCost = 10

const (
	minPasswordLen = 8
	// bcrypt silently truncates input at 72 bytes; reject instead.
	maxPasswordLen = 72
)

// HashPassword returns a bcrypt hash of the plaintext password.
//
// Security contract:
// - Enforces password length bounds (8..72 bytes).
// - Cost is clamped to [MinPasswordCost, bcrypt.MaxCost].
func HashPassword(passwordPlain string, cost int) (string, error) {
	if len(passwordPlain) < minPasswordLen {
		return "", errors.New("password too short")
	}
	if len(passwordPlain) > maxPasswordLen {
		return "", errors.New("password too long")
	}
	if cost < MinPasswordCost {
		cost = MinPasswordCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(passwordPlain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
// Returns (false, nil) on mismatch; an error only for malformed hashes.
func VerifyPassword(passwordPlain string, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(passwordPlain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
