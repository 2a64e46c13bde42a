package authapi

import (
	"context"
	"net/http"

	"gatehouse/cmd/identity"
	"gatehouse/cmd/internal/metrics"
)

// Session is the request-scoped authentication state resolved by WithSession.
type Session struct {
	Authenticated bool
	User          *identity.Snapshot
}

type sessionContextKey struct{}

// SessionFromContext returns the session resolved by WithSession. The zero
// Session (anonymous) is returned when the middleware did not run.
func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionContextKey{}).(Session)
	return s
}

// WithSession resolves the signed token cookies into a Session before the
// wrapped handler runs.
//
// The access token is tried first; a valid one authenticates the request
// without touching the database. An invalid access token is cleared and the
// refresh token is tried: when it verifies and the user still exists, a new
// token pair is minted and both cookies are rolled forward. A refresh token
// whose user cannot be loaded is a server fault and fails the request.
// Anything else degrades to an anonymous session with stale cookies cleared.
func (h *Handler) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h == nil {
			next.ServeHTTP(w, r)
			return
		}

		if access, found, err := h.cookies.read(r, h.cfg.AccessCookieName); found && err == nil {
			if claims, err := h.issuer.VerifyAccess(access); err == nil {
				metrics.SessionOutcomes.WithLabelValues(metrics.OutcomeAccess).Inc()
				h.serveAuthenticated(w, r, next, claims.User)
				return
			}
			h.cookies.clear(w, h.cfg.AccessCookieName)
		} else if found {
			// Present but unverifiable cookie, drop it.
			h.cookies.clear(w, h.cfg.AccessCookieName)
		}

		if refresh, found, err := h.cookies.read(r, h.cfg.RefreshCookieName); found && err == nil {
			if userID, err := h.issuer.VerifyRefresh(refresh); err == nil {
				h.renewSession(w, r, next, userID)
				return
			}
			h.cookies.clear(w, h.cfg.RefreshCookieName)
		} else if found {
			h.cookies.clear(w, h.cfg.RefreshCookieName)
		}

		metrics.SessionOutcomes.WithLabelValues(metrics.OutcomeAnonymous).Inc()
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), Session{})))
	})
}

// renewSession reloads the user behind a valid refresh token and rolls both
// cookies forward. A lookup failure of any kind is not downgraded to an
// anonymous session: the token was cryptographically valid, so the failure
// is ours.
func (h *Handler) renewSession(w http.ResponseWriter, r *http.Request, next http.Handler, userID int64) {
	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		h.log.Error("session.refresh.user_lookup.fail", "user_id", userID, "err", err)
		metrics.SessionOutcomes.WithLabelValues(metrics.OutcomeError).Inc()
		writeMessage(w, http.StatusInternalServerError, "Session refresh failed", false)
		return
	}

	snapshot := user.Snapshot()
	if err := h.issueSessionCookies(w, snapshot); err != nil {
		h.log.Error("session.refresh.issue.fail", "user_id", userID, "err", err)
		metrics.SessionOutcomes.WithLabelValues(metrics.OutcomeError).Inc()
		writeMessage(w, http.StatusInternalServerError, "Session refresh failed", false)
		return
	}

	h.log.Info("session.refresh.renewed", "user_id", userID)
	metrics.SessionOutcomes.WithLabelValues(metrics.OutcomeRefresh).Inc()
	h.serveAuthenticated(w, r, next, snapshot)
}

func (h *Handler) serveAuthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, user identity.Snapshot) {
	sess := Session{Authenticated: true, User: &user}
	next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
}

func withSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}
