package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gatehouse/cmd/identity"
	"gatehouse/cmd/internal/auth/token"
	"gatehouse/cmd/internal/metrics"
)

// Handler wires the HTTP auth endpoints to the identity store and token issuer.
type Handler struct {
	log *slog.Logger
	cfg Config

	store    identity.Store
	verifier *identity.Verifier
	issuer   *token.Issuer
	cookies  *cookieCodec
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, store identity.Store, issuer *token.Issuer) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		return nil, errors.New("authapi: nil store")
	}
	if issuer == nil {
		return nil, errors.New("authapi: nil issuer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		log:      log,
		cfg:      cfg,
		store:    store,
		verifier: identity.NewVerifier(store),
		issuer:   issuer,
		cookies:  newCookieCodec(cfg),
	}, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/auth/register", h.handleRegister)
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/me", h.handleMe)
}

// issueSessionCookies mints a fresh token pair for user and sets both cookies.
func (h *Handler) issueSessionCookies(w http.ResponseWriter, user identity.Snapshot) error {
	access, accessExp, err := h.issuer.IssueAccess(user)
	if err != nil {
		return err
	}
	refresh, refreshExp, err := h.issuer.IssueRefresh(user.ID)
	if err != nil {
		return err
	}

	if err := h.cookies.set(w, h.cfg.AccessCookieName, access, accessExp); err != nil {
		return err
	}
	return h.cookies.set(w, h.cfg.RefreshCookieName, refresh, refreshExp)
}

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body", false)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		metrics.Registrations.WithLabelValues("error").Inc()
		writeMessage(w, http.StatusBadRequest, "Registration failed", false)
		return
	}

	hash, err := identity.HashPassword(req.Password, h.cfg.PasswordCost)
	if err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		writeMessage(w, http.StatusBadRequest, "Registration failed", false)
		return
	}

	user, err := h.store.CreateUser(r.Context(), identity.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		switch {
		case identity.IsConflict(err):
			metrics.Registrations.WithLabelValues("conflict").Inc()
			writeMessage(w, http.StatusConflict, "Registration failed", false)
		case identity.IsInvalidInput(err):
			metrics.Registrations.WithLabelValues("error").Inc()
			writeMessage(w, http.StatusBadRequest, "Registration failed", false)
		default:
			h.log.Error("auth.register.fail", "err", err)
			metrics.Registrations.WithLabelValues("error").Inc()
			writeMessage(w, http.StatusInternalServerError, "Registration failed", false)
		}
		return
	}

	h.log.Info("auth.register.ok", "user_id", user.ID)
	metrics.Registrations.WithLabelValues("success").Inc()
	writeMessage(w, http.StatusCreated, "Registration successful", true)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body", false)
		return
	}

	user, err := h.verifier.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		if identity.IsInvalidCredentials(err) {
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials", false)
			return
		}
		h.log.Error("auth.login.fail", "err", err)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		writeMessage(w, http.StatusInternalServerError, "Login failed", false)
		return
	}

	if err := h.issueSessionCookies(w, user.Snapshot()); err != nil {
		h.log.Error("auth.login.issue.fail", "user_id", user.ID, "err", err)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		writeMessage(w, http.StatusInternalServerError, "Login failed", false)
		return
	}

	h.log.Info("auth.login.ok", "user_id", user.ID)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	writeMessage(w, http.StatusOK, "Login success", true)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// requireUser is the auth guard: it yields the session user or writes 401.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (identity.Snapshot, bool) {
	sess := SessionFromContext(r.Context())
	if !sess.Authenticated || sess.User == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized", false)
		return identity.Snapshot{}, false
	}
	return *sess.User, true
}
