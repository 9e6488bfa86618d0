package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Rating and NumReviews are stored
// aggregates recomputed from the reviews on every review mutation.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Price       float64   `gorm:"not null"`
	SalePrice   *float64
	Description string    `gorm:"type:text;not null"`
	ImageURL    string    `gorm:"type:varchar(500);not null"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Brand       string    `gorm:"type:varchar(50);not null"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerName  string    `gorm:"type:varchar(100);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:pending;index"`
	Rating      float64   `gorm:"not null;default:0"`
	NumReviews  int       `gorm:"not null;default:0"`
	Stock       int       `gorm:"not null;default:0"`
	SKU         string    `gorm:"type:varchar(64)"`
	Tags        []string  `gorm:"serializer:json;type:jsonb"`
	ViewCount   int       `gorm:"not null;default:0"`
	SalesCount  int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Reviews []*ReviewModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel mirrors the 'reviews' table. The composite unique index enforces
// at most one review per (product, user) pair at the database level.
type ReviewModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	ReviewerName string    `gorm:"type:varchar(100);not null"`
	Rating       int       `gorm:"not null"`
	Comment      string    `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
