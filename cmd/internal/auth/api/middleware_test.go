package authapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not found", name)
	return nil
}

// encodedCookie signs an arbitrary value into a valid cookie envelope.
func encodedCookie(t *testing.T, h *Handler, name, value string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := h.cookies.set(rec, name, value, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("set cookie: %v", err)
	}
	return cookieByName(t, rec.Result().Cookies(), name)
}

func TestWithSession_ValidAccessSkipsStore(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)
	cookies := registerAndLogin(t, h, "a@x.com", "hunter22")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	// A valid access token authenticates without touching the database.
	if store.lookupsByID != 0 {
		t.Fatalf("expected no user lookups, got %d", store.lookupsByID)
	}
}

func TestWithSession_RefreshRenewsBothCookies(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)
	cookies := registerAndLogin(t, h, "a@x.com", "hunter22")

	// Only the refresh cookie survives, as if the access token had expired
	// and the browser dropped it.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookieByName(t, cookies, h.cfg.RefreshCookieName))

	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.lookupsByID != 1 {
		t.Fatalf("expected one user lookup, got %d", store.lookupsByID)
	}

	renewed := rec.Result().Cookies()
	access := cookieByName(t, renewed, h.cfg.AccessCookieName)
	refresh := cookieByName(t, renewed, h.cfg.RefreshCookieName)
	if access.MaxAge < 0 || refresh.MaxAge < 0 {
		t.Fatalf("renewal must set live cookies, not clear them")
	}
	if access.Value == "" || refresh.Value == "" {
		t.Fatalf("renewed cookies must carry values")
	}
}

func TestWithSession_RefreshUserMissingFailsRequest(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)
	cookies := registerAndLogin(t, h, "a@x.com", "hunter22")

	// The refresh token is still cryptographically valid, but the user row
	// is gone. This must not degrade to an anonymous session.
	store.deleteUser(1)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookieByName(t, cookies, h.cfg.RefreshCookieName))

	rec := serve(h, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (body %s)", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg.Success {
		t.Fatalf("unexpected response: %+v", msg)
	}
}

func TestWithSession_InvalidAccessFallsThroughToRefresh(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)
	cookies := registerAndLogin(t, h, "a@x.com", "hunter22")

	// A properly signed cookie envelope around a token that no longer
	// verifies, the shape of an expired access token.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(encodedCookie(t, h, h.cfg.AccessCookieName, "not-a-valid-jwt"))
	req.AddCookie(cookieByName(t, cookies, h.cfg.RefreshCookieName))

	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.lookupsByID != 1 {
		t.Fatalf("expected renewal via refresh, got %d lookups", store.lookupsByID)
	}
}

func TestWithSession_TamperedCookiesCleared(t *testing.T) {
	h := newTestHandler(t, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: h.cfg.AccessCookieName, Value: "tampered"})
	req.AddCookie(&http.Cookie{Name: h.cfg.RefreshCookieName, Value: "tampered"})

	rec := serve(h, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	cleared := rec.Result().Cookies()
	for _, name := range []string{h.cfg.AccessCookieName, h.cfg.RefreshCookieName} {
		c := cookieByName(t, cleared, name)
		if c.MaxAge >= 0 || c.Value != "" {
			t.Fatalf("cookie %q must be cleared, got MaxAge=%d Value=%q", name, c.MaxAge, c.Value)
		}
	}
}

func TestSessionFromContext_Default(t *testing.T) {
	sess := SessionFromContext(context.Background())
	if sess.Authenticated || sess.User != nil {
		t.Fatalf("expected anonymous zero session, got %+v", sess)
	}
}
