package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gatehouse/cmd/identity"
)

// AccessClaims is the access token payload: registered claims plus the
// embedded public user snapshot. The snapshot never carries the password hash.
type AccessClaims struct {
	jwt.RegisteredClaims
	User identity.Snapshot `json:"user"`
}

// refreshClaims carries only the subject id.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// Issuer mints and verifies the HS256 session token pair.
type Issuer struct {
	cfg Config

	// now is swappable in tests.
	now func() time.Time
}

// NewIssuer validates cfg and returns an Issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg, now: func() time.Time { return time.Now().UTC() }}, nil
}

// IssueAccess mints an access token embedding the user snapshot.
// Returns the signed token and its expiry.
func (i *Issuer) IssueAccess(user identity.Snapshot) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.cfg.AccessTTL)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		User: user,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.AccessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IssueRefresh mints a refresh token carrying only the subject id.
// Returns the signed token and its expiry.
func (i *Issuer) IssueRefresh(userID int64) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.cfg.RefreshTTL)

	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyAccess validates signature and expiry against the access secret and
// returns the decoded claims. Any failure collapses to ErrTokenInvalid.
func (i *Issuer) VerifyAccess(tokenString string) (AccessClaims, error) {
	claims := &AccessClaims{}
	if err := i.parse(tokenString, claims, i.cfg.AccessSecret); err != nil {
		return AccessClaims{}, err
	}
	if claims.User.ID <= 0 {
		return AccessClaims{}, ErrTokenInvalid
	}
	return *claims, nil
}

// VerifyRefresh validates signature and expiry against the refresh secret and
// returns the subject id. Any failure collapses to ErrTokenInvalid.
func (i *Issuer) VerifyRefresh(tokenString string) (int64, error) {
	claims := &refreshClaims{}
	if err := i.parse(tokenString, claims, i.cfg.RefreshSecret); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

func (i *Issuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tok.Valid {
		return ErrTokenInvalid
	}
	return nil
}
