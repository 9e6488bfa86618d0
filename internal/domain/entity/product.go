// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ProductStatus represents the moderation state of a product listing.
type ProductStatus string

const (
	// ProductPending means the listing awaits admin moderation.
	ProductPending ProductStatus = "pending"
	// ProductApproved means the listing is publicly visible.
	ProductApproved ProductStatus = "approved"
	// ProductRejected means the listing was refused by an admin.
	ProductRejected ProductStatus = "rejected"
)

// String returns the string representation of the ProductStatus.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid checks if the ProductStatus is a valid value.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductPending, ProductApproved, ProductRejected:
		return true
	default:
		return false
	}
}

// Categories is the closed set of product categories the marketplace accepts.
var Categories = []string{
	"electronics", "fashion", "home", "beauty", "sports", "toys", "books", "grocery",
}

// IsValidCategory checks whether the category belongs to the closed set.
func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

// Product is a catalog listing owned by a selling identity. Rating and
// NumReviews are aggregates derived from Reviews; they are recomputed on every
// review mutation and must never be set independently.
type Product struct {
	ID          uuid.UUID     // The unique identifier for the product.
	Name        string        // Display name of the listing.
	Price       float64       // Unit price, strictly positive.
	SalePrice   *float64      // Optional discounted price, must be below Price.
	Description string        // Marketing copy for the listing.
	ImageURL    string        // Primary image URL.
	Category    string        // One of Categories.
	Brand       string        // Brand name.
	SellerID    uuid.UUID     // Owning identity. Immutable after creation.
	SellerName  string        // Denormalized owner display name for listings.
	Status      ProductStatus // Moderation state of the listing.
	Reviews     []*Review     // Embedded reviews, ordered by creation.
	Rating      float64       // Derived: round1(mean of review ratings), 0 when empty.
	NumReviews  int           // Derived: len(Reviews).
	Stock       int           // Optional inventory counter.
	SKU         string        // Optional stock keeping unit.
	Tags        []string      // Optional free-form tags.
	ViewCount   int           // Times the detail view was served.
	SalesCount  int           // Units sold (not decremented by this core).
	CreatedAt   time.Time     // Timestamp of listing creation.
	UpdatedAt   time.Time     // Timestamp of the last modification.
}

// Review is a single customer review embedded in a product. At most one
// review per (product, user) pair may exist.
type Review struct {
	ID           uuid.UUID // The unique identifier for the review.
	ProductID    uuid.UUID // The reviewed product.
	UserID       uuid.UUID // The reviewing identity.
	ReviewerName string    // Display name denormalized at write time.
	Rating       int       // Integer rating in [1,5].
	Comment      string    // Non-empty free-text comment.
	CreatedAt    time.Time // Timestamp of review submission.
}

// HasReviewBy reports whether the given identity already reviewed this product.
func (p *Product) HasReviewBy(userID uuid.UUID) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}

	return false
}

// AddReview appends a review and recomputes the rating aggregates.
// Callers must have checked HasReviewBy first; the persistence layer backs
// the check with a unique constraint on (product, user).
func (p *Product) AddReview(review *Review) {
	review.ProductID = p.ID
	p.Reviews = append(p.Reviews, review)
	p.RecalculateRating()
}

// RecalculateRating rederives Rating and NumReviews from the review sequence.
// Rating is the mean of the review ratings rounded to one decimal, or 0 for
// an unreviewed product.
func (p *Product) RecalculateRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0

		return
	}

	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = math.Round(float64(sum)/float64(p.NumReviews)*10) / 10
}
