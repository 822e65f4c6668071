package ports

import (
	"context"
	"time"

	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
)

// RegisterInput carries signup fields. Name is optional and defaults to the
// email local-part.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// ProfileUpdateInput carries the optional profile fields; empty strings are
// treated as "not provided", mirroring the HTTP contract.
type ProfileUpdateInput struct {
	Name     string
	Phone    string
	Password string
}

// AuthService covers registration, login, token revocation and profile
// management.
type AuthService interface {
	// Register creates the account and returns a freshly issued token with
	// the public user. Fails with domain.ErrUserExists on duplicate email.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	// Login returns a token and the public user. Unknown email and wrong
	// password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// GetSelf returns the caller's own profile.
	GetSelf(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile applies the provided subset of fields to targetID. Fails
	// with domain.ErrForbidden when callerID != targetID, before any mutation.
	UpdateProfile(ctx context.Context, callerID, targetID string, in ProfileUpdateInput) (*domain.User, error)
	// Logout revokes the token identified by jti until expiresAt.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// TokenStore is the revocation list consulted on every authenticated request.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
