package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidCategory = errors.New("invalid product category")

// Product categories form a closed set; anything outside it is rejected at
// creation time.
const (
	CategoryNecklaces = "necklaces"
	CategoryEarrings  = "earrings"
	CategoryBracelets = "bracelets"
	CategoryRings     = "rings"
	CategoryOther     = "other"
)

// Categories lists every valid product category.
var Categories = []string{
	CategoryNecklaces,
	CategoryEarrings,
	CategoryBracelets,
	CategoryRings,
	CategoryOther,
}

// ValidCategory reports whether c belongs to the fixed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Read-heavy; the API surface has no update or
// delete paths.
type Product struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Stock       int       `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
