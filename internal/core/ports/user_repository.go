package ports

import (
	"context"

	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
)

// UserUpdate carries the subset of profile fields to change. Empty strings
// mean "leave unchanged".
type UserUpdate struct {
	Name         string
	Phone        string
	PasswordHash string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update applies the non-empty fields of upd and returns the updated
	// document. Returns domain.ErrUserNotFound for an unknown id.
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
}
