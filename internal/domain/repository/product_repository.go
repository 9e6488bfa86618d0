// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"pressmart/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateReview is returned when the unique (product, user) review
	// constraint is violated.
	ErrDuplicateReview = errors.New("review already exists for this product and user")
)

// ProductFilter narrows public catalog listings.
type ProductFilter struct {
	Category string // Empty means all categories.
	Search   string // Case-insensitive substring match on name and brand.
	Limit    int    // Zero means no limit.
	Offset   int
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product with its reviews.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product with its reviews while holding a
	// row lock until the surrounding transaction ends. Review appends use it
	// to make the append-and-recompute read-modify-write safe under
	// concurrent reviewers.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListApproved retrieves publicly visible products matching the filter.
	ListApproved(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// ListBySeller retrieves all of a seller's own products regardless of status.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)

	// ListRecentBySeller retrieves the seller's newest products up to limit.
	ListRecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*entity.Product, error)

	// ListAll retrieves every product platform-wide, newest first.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity, including its reviews.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product and its reviews permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount atomically bumps the product's view counter.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)

	// CountBySeller returns the number of a seller's products, optionally
	// narrowed to one moderation status.
	CountBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.ProductStatus) (int64, error)

	// SumViewsBySeller returns the total view count across a seller's products.
	SumViewsBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
}
