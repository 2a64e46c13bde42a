package identity

import (
	"context"
	"strings"
)

// Verifier checks email/password pairs against stored hashes.
//
// Failure modes are deliberately collapsed: "no such user" and "wrong
// password" both surface as ErrInvalidCredentials, and a dummy bcrypt compare
// runs on the missing-user path to keep the two timing-close.
type Verifier struct {
	store Store

	dummyHash string
}

// NewVerifier constructs a Verifier over the given store.
func NewVerifier(store Store) *Verifier {
	v := &Verifier{store: store}

	// Dummy hash for timing-resistant login checks.
	if hash, err := HashPassword("dummy-password-for-timing-only", MinPasswordCost); err == nil {
		v.dummyHash = hash
	}
	return v
}

// Verify looks up the user by email (exact match) and compares the plaintext
// against the stored bcrypt hash. On success the returned User has its
// password hash stripped. Read-only: no store writes, ever.
func (v *Verifier) Verify(ctx context.Context, email, passwordPlain string) (User, error) {
	const op = "identity.Verify"

	if v == nil || v.store == nil {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil verifier"}
	}
	if strings.TrimSpace(email) == "" || passwordPlain == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidCredentials}
	}

	u, err := v.store.GetUserByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			if v.dummyHash != "" {
				_, _ = VerifyPassword(passwordPlain, v.dummyHash)
			}
			return User{}, OpError{Op: op, Kind: ErrInvalidCredentials}
		}
		return User{}, err
	}

	ok, err := VerifyPassword(passwordPlain, u.PasswordHash)
	if err != nil || !ok {
		return User{}, OpError{Op: op, Kind: ErrInvalidCredentials}
	}

	u.PasswordHash = ""
	return u, nil
}
