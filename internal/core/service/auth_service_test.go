package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by id
	nextID  int
	updates int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	if upd.PasswordHash != "" {
		u.PasswordHash = upd.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

type stubTokenStore struct {
	revoked map[string]time.Duration
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{revoked: make(map[string]time.Duration)}
}

func (s *stubTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.revoked[jti] = ttl
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, nil
}

func newTestAuthService(repo *stubUserRepo, tokens *stubTokenStore) *AuthService {
	return NewAuthService(repo, tokens, "secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "Ann@Example.com",
		Password: "pw1",
		Name:     "Ann",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Email != "ann@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DefaultName(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Name != "bob" {
		t.Fatalf("expected default name bob, got %q", user.Name)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@example.com", Password: "pw1", Name: "Ann"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@example.com", Password: "pw2"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubTokenStore())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "pw"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.com", Password: ""}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("no exp claim: %v", err)
	}
	if until := time.Until(exp.Time); until > time.Hour || until < 50*time.Minute {
		t.Fatalf("expected ~1h expiry, got %v", until)
	}
}

func TestAuthService_Login_GenericError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass"})

	// Unknown email and wrong password must be indistinguishable.
	_, _, errUnknown := svc.Login(context.Background(), "ghost@example.com", "x")
	_, _, errWrongPw := svc.Login(context.Background(), "dave@example.com", "badpass")
	if errUnknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errWrongPw != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func TestAuthService_UpdateProfile_Forbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	_, user, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "eve@example.com", Password: "pw"})

	_, err := svc.UpdateProfile(context.Background(), "someone_else", user.ID, ports.ProfileUpdateInput{Name: "Mallory"})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no mutation, saw %d updates", repo.updates)
	}
}

func TestAuthService_UpdateProfile_PartialAndRehash(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubTokenStore())

	_, user, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "frank@example.com", Password: "oldpw"})

	updated, err := svc.UpdateProfile(context.Background(), user.ID, user.ID, ports.ProfileUpdateInput{
		Phone:    "555-0101",
		Password: "newpw",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Phone != "555-0101" {
		t.Fatalf("phone not updated: %q", updated.Phone)
	}
	if updated.Name != "frank" {
		t.Fatalf("name should be unchanged, got %q", updated.Name)
	}

	if _, _, err := svc.Login(context.Background(), "frank@example.com", "newpw"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "oldpw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password should no longer work, got %v", err)
	}
}

func TestAuthService_UpdateProfile_NotFound(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubTokenStore())

	if _, err := svc.UpdateProfile(context.Background(), "ghost", "ghost", ports.ProfileUpdateInput{Name: "x"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthService_Logout(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestAuthService(newStubUserRepo(), tokens)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revoked, _ := tokens.IsRevoked(context.Background(), "jti-1"); !revoked {
		t.Fatalf("expected jti-1 to be revoked")
	}

	// Expired tokens need no denylist entry.
	if err := svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("logout of expired token failed: %v", err)
	}
	if revoked, _ := tokens.IsRevoked(context.Background(), "jti-2"); revoked {
		t.Fatalf("expired token should not be stored")
	}
}
