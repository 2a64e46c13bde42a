package identity

import (
	"context"
	"time"
)

// User is Gatehouse's canonical security principal.
// IMPORTANT: PasswordHash is stored server-side and must never leave this
// package except into the store; outward-facing values use Snapshot.
type User struct {
	ID           int64
	Email        string
	PasswordHash string

	CreatedAt time.Time
}

// Snapshot is the public projection of a User: what gets embedded in access
// tokens and returned by /auth/me. It never carries the password hash.
type Snapshot struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Snapshot returns the public projection of u.
func (u User) Snapshot() Snapshot {
	return Snapshot{ID: u.ID, Email: u.Email}
}

// CreateUserInput describes a user registration request.
// PasswordHash must already be hashed; the store never sees plaintext.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Now          time.Time
}

// Store is the identity persistence boundary.
//
// GetUserByEmail and GetUserByID return NotFoundError when no row matches.
// CreateUser returns ConflictError{Field: "email"} on a duplicate email.
type Store interface {
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
}
