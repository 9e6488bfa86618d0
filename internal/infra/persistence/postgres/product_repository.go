// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	"pressmart/internal/domain/repository"
	"pressmart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product with its reviews.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Reviews", reviewOrder).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByIDForUpdate retrieves a product with its reviews while holding a
// FOR UPDATE row lock on the product row. The lock lives until the
// surrounding transaction commits or rolls back, serializing concurrent
// review appends against the same product.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to lock product by id")
	}

	// Reviews are loaded separately; FOR UPDATE cannot lock across the join.
	var reviewMs []*model.ReviewModel
	err = repo.db.WithContext(ctx).
		Where("product_id = ?", id).
		Order("created_at ASC").
		Find(&reviewMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load reviews for locked product")
	}
	productM.Reviews = reviewMs

	return toProductDomain(&productM), nil
}

// ListApproved retrieves publicly visible products matching the filter, newest first.
func (repo *productRepository) ListApproved(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).
		Preload("Reviews", reviewOrder).
		Where("status = ?", entity.ProductApproved.String())

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var productMs []*model.ProductModel
	if err := query.Order("created_at DESC").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list approved products")
	}

	return toProductDomainList(productMs), nil
}

// ListBySeller retrieves all of a seller's own products regardless of status, newest first.
func (repo *productRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	var productMs []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Reviews", reviewOrder).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products by seller")
	}

	return toProductDomainList(productMs), nil
}

// ListRecentBySeller retrieves the seller's newest products up to limit.
func (repo *productRepository) ListRecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*entity.Product, error) {
	var productMs []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent products by seller")
	}

	return toProductDomainList(productMs), nil
}

// ListAll retrieves every product platform-wide, newest first.
func (repo *productRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var productMs []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Reviews", reviewOrder).
		Order("created_at DESC").
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all products")
	}

	return toProductDomainList(productMs), nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid seller reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the product entity with the generated ID and timestamps
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product entity, including its reviews.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	// FullSaveAssociations upserts the embedded reviews alongside the product.
	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(productM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	// Propagate generated review IDs and timestamps back to the entity.
	product.UpdatedAt = productM.UpdatedAt
	for i, reviewM := range productM.Reviews {
		if i < len(product.Reviews) {
			product.Reviews[i].ID = reviewM.ID
			product.Reviews[i].CreatedAt = reviewM.CreatedAt
		}
	}

	return nil
}

// Delete removes a product permanently; the review FK cascades.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// IncrementViewCount atomically bumps the product's view counter.
func (repo *productRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return errors.Wrap(err, "failed to increment view count")
	}

	return nil
}

// Count returns the total number of products.
func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

// CountBySeller returns the number of a seller's products, optionally narrowed
// to one moderation status.
func (repo *productRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.ProductStatus) (int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("seller_id = ?", sellerID)
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products by seller")
	}

	return count, nil
}

// SumViewsBySeller returns the total view count across a seller's products.
func (repo *productRepository) SumViewsBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("seller_id = ?", sellerID).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum views by seller")
	}

	return total, nil
}

// reviewOrder keeps preloaded reviews in creation order so the embedded
// sequence is stable across reads.
func reviewOrder(db *gorm.DB) *gorm.DB {
	return db.Order("reviews.created_at ASC")
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	reviews := make([]*entity.Review, 0, len(data.Reviews))
	for _, reviewM := range data.Reviews {
		reviews = append(reviews, &entity.Review{
			ID:           reviewM.ID,
			ProductID:    reviewM.ProductID,
			UserID:       reviewM.UserID,
			ReviewerName: reviewM.ReviewerName,
			Rating:       reviewM.Rating,
			Comment:      reviewM.Comment,
			CreatedAt:    reviewM.CreatedAt,
		})
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		SalePrice:   data.SalePrice,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		Category:    data.Category,
		Brand:       data.Brand,
		SellerID:    data.SellerID,
		SellerName:  data.SellerName,
		Status:      entity.ProductStatus(data.Status),
		Reviews:     reviews,
		Rating:      data.Rating,
		NumReviews:  data.NumReviews,
		Stock:       data.Stock,
		SKU:         data.SKU,
		Tags:        data.Tags,
		ViewCount:   data.ViewCount,
		SalesCount:  data.SalesCount,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	reviews := make([]*model.ReviewModel, 0, len(data.Reviews))
	for _, review := range data.Reviews {
		reviews = append(reviews, &model.ReviewModel{
			ID:           review.ID,
			ProductID:    review.ProductID,
			UserID:       review.UserID,
			ReviewerName: review.ReviewerName,
			Rating:       review.Rating,
			Comment:      review.Comment,
			CreatedAt:    review.CreatedAt,
		})
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		SalePrice:   data.SalePrice,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		Category:    data.Category,
		Brand:       data.Brand,
		SellerID:    data.SellerID,
		SellerName:  data.SellerName,
		Status:      data.Status.String(),
		Reviews:     reviews,
		Rating:      data.Rating,
		NumReviews:  data.NumReviews,
		Stock:       data.Stock,
		SKU:         data.SKU,
		Tags:        data.Tags,
		ViewCount:   data.ViewCount,
		SalesCount:  data.SalesCount,
		CreatedAt:   data.CreatedAt,
	}
}

func toProductDomainList(data []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for _, productM := range data {
		products = append(products, toProductDomain(productM))
	}

	return products
}
