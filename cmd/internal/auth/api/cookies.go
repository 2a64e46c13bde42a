package authapi

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// cookieCodec signs cookie values so a client cannot swap or splice tokens
// between cookie names. The JWT inside is independently signed; the cookie
// layer only authenticates the transport envelope.
type cookieCodec struct {
	cfg Config
	sc  *securecookie.SecureCookie
}

func newCookieCodec(cfg Config) *cookieCodec {
	// Values are JWTs, not structs; hash-only signing is enough.
	sc := securecookie.New(cfg.CookieHashKey, nil)
	sc.MaxAge(0) // expiry is enforced by the tokens themselves
	return &cookieCodec{cfg: cfg, sc: sc}
}

// read returns the decoded cookie value. A missing cookie yields found=false
// with no error; a present but unverifiable cookie yields found=true with
// the decode error so callers can clear it.
func (c *cookieCodec) read(r *http.Request, name string) (string, bool, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false, nil
	}

	var value string
	if err := c.sc.Decode(name, cookie.Value, &value); err != nil {
		return "", true, err
	}
	return value, true, nil
}

func (c *cookieCodec) set(w http.ResponseWriter, name, value string, exp time.Time) error {
	encoded, err := c.sc.Encode(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     c.cfg.CookiePath,
		Domain:   c.cfg.CookieDomain,
		Expires:  exp,
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: c.cfg.CookieSameSite,
	})
	return nil
}

// clear expires the cookie with the same attributes it was set with.
func (c *cookieCodec) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     c.cfg.CookiePath,
		Domain:   c.cfg.CookieDomain,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: c.cfg.CookieSameSite,
	})
}
