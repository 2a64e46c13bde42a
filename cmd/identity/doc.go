// Package identity implements Gatehouse's identity foundation.
//
// It contains the persisted User model, the Postgres-backed store,
// bcrypt password hashing, and the credential verifier used by the
// HTTP auth layer.
//
// This package is intentionally dependency-light and security-first.
package identity
