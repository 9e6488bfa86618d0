// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pressmart/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a product listing.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	SalePrice   *float64 `json:"salePrice,omitempty" validate:"omitempty,gt=0"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	ImageURL    string   `json:"image" validate:"required,image_url"`
	Category    string   `json:"category" validate:"required,category"`
	Brand       string   `json:"brand" validate:"required,min=1,max=50"`
	Stock       int      `json:"stock" validate:"gte=0"`
	SKU         string   `json:"sku,omitempty" validate:"omitempty,max=64"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
}

// UpdateProductInput defines the mutable fields of a listing. Absent fields
// are left untouched; present ones are re-validated with the creation rules.
type UpdateProductInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	SalePrice   *float64 `json:"salePrice,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10,max=2000"`
	ImageURL    *string  `json:"image,omitempty" validate:"omitempty,image_url"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,category"`
	Brand       *string  `json:"brand,omitempty" validate:"omitempty,min=1,max=50"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	SKU         *string  `json:"sku,omitempty" validate:"omitempty,max=64"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
}

// AddReviewInput defines the data required to review a product.
type AddReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

// ListProductsInput narrows the public catalog listing.
type ListProductsInput struct {
	Category string `json:"category,omitempty" validate:"omitempty,category"`
	Search   string `json:"search,omitempty" validate:"omitempty,max=200"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
	Offset   int    `json:"offset,omitempty" validate:"omitempty,gte=0"`
}

// --- Output DTOs ---

// SellerStatsOutput summarizes a seller's catalog for their dashboard.
type SellerStatsOutput struct {
	TotalProducts    int64 `json:"totalProducts"`
	ApprovedProducts int64 `json:"approvedProducts"`
	PendingProducts  int64 `json:"pendingProducts"`
	TotalViews       int64 `json:"totalViews"`
}

// CatalogUsecase defines the interface for product and review operations.
type CatalogUsecase interface {
	// ListApproved returns publicly visible listings only.
	ListApproved(ctx context.Context, input *ListProductsInput) ([]*entity.Product, error)
	// GetByID returns any product by ID and counts the view.
	GetByID(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	// ListMine returns all of the caller's own listings regardless of status.
	ListMine(ctx context.Context, actorID uuid.UUID) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, actorID uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error
	AddReview(ctx context.Context, actorID, productID uuid.UUID, input *AddReviewInput) (*entity.Product, error)
	SellerStats(ctx context.Context, actorID uuid.UUID) (*SellerStatsOutput, error)
	RecentProducts(ctx context.Context, actorID uuid.UUID) ([]*entity.Product, error)
}
