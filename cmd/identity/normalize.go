package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
// The normalized form backs the unique index; lookups still match the email
// column exactly as stored.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
