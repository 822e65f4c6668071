package ports

import (
	"context"

	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
)

// CreateProductInput carries the fields for a new catalog entry. Field-level
// constraints (name length, price, category enum) are enforced at the
// transport layer; the service re-checks the category invariant.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Stock       int
}

// CatalogService defines the product browsing and creation use cases.
type CatalogService interface {
	// ListProducts returns every product. No pagination or filtering.
	ListProducts(ctx context.Context) ([]domain.Product, error)
	// GetProduct fails with domain.ErrInvalidID for a malformed id and
	// domain.ErrProductNotFound for an unknown one.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}
