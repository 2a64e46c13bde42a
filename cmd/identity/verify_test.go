package identity

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for unit tests.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]User // keyed by exact email
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]User)}
}

func (f *fakeStore) CreateUser(_ context.Context, in CreateUserInput) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if NormalizeEmail(u.Email) == NormalizeEmail(in.Email) {
			return User{}, ConflictError{Op: "fake.CreateUser", Field: "email"}
		}
	}
	f.nextID++
	u := User{
		ID:           f.nextID,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[in.Email] = u
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[email]
	if !ok {
		return User{}, NotFoundError{Op: "fake.GetUserByEmail", Resource: "user"}
	}
	return u, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, NotFoundError{Op: "fake.GetUserByID", Resource: "user"}
}

func mustRegister(t *testing.T, store Store, email, password string) User {
	t.Helper()

	hash, err := HashPassword(password, MinPasswordCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u, err := store.CreateUser(context.Background(), CreateUserInput{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestVerifier_Success_StripsHash(t *testing.T) {
	store := newFakeStore()
	mustRegister(t, store, "a@x.com", "secret123")

	v := NewVerifier(store)
	u, err := v.Verify(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if u.Email != "a@x.com" {
		t.Fatalf("unexpected email: %q", u.Email)
	}
	if u.ID == 0 {
		t.Fatalf("expected user id")
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must be stripped from verified user")
	}
}

func TestVerifier_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	store := newFakeStore()
	mustRegister(t, store, "a@x.com", "secret123")

	v := NewVerifier(store)

	_, errWrongPw := v.Verify(context.Background(), "a@x.com", "wrong-password")
	_, errNoUser := v.Verify(context.Background(), "nobody@x.com", "secret123")

	if !IsInvalidCredentials(errWrongPw) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if !IsInvalidCredentials(errNoUser) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Fatalf("failure messages must be indistinguishable: %q vs %q", errWrongPw, errNoUser)
	}
}

func TestVerifier_EmptyInput(t *testing.T) {
	v := NewVerifier(newFakeStore())

	if _, err := v.Verify(context.Background(), "", "secret123"); !IsInvalidCredentials(err) {
		t.Fatalf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "a@x.com", ""); !IsInvalidCredentials(err) {
		t.Fatalf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifier_NilGuard(t *testing.T) {
	var nilVerifier *Verifier
	if _, err := nilVerifier.Verify(context.Background(), "a@x.com", "secret123"); !IsInvalidInput(err) {
		t.Fatalf("nil verifier: expected ErrInvalidInput, got %v", err)
	}
}
