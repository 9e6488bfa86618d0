package impl

import (
	"context"
	"log/slog"

	"pressmart/config"
	deliverycontext "pressmart/internal/delivery/context"
	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	"pressmart/internal/domain/policy"
	"pressmart/internal/domain/repository"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const recentProductsLimit = 6

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	productRepo       repository.ProductRepository
	sellerAutoApprove bool
	logger            *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	sellerAutoApprove := true
	if params.Config != nil && params.Config.Policy != nil {
		sellerAutoApprove = params.Config.Policy.SellerAutoApprove
	}

	return &catalogService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		productRepo:       params.ProductRepo,
		sellerAutoApprove: sellerAutoApprove,
		logger:            params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListApproved returns only publicly visible listings; pending and rejected
// products never leak into the public catalog.
func (srv *catalogService) ListApproved(ctx context.Context, input *usecase.ListProductsInput) ([]*entity.Product, error) {
	filter := repository.ProductFilter{}
	if input != nil {
		if err := validateInput(input); err != nil {
			return nil, err
		}
		filter = repository.ProductFilter{
			Category: input.Category,
			Search:   input.Search,
			Limit:    input.Limit,
			Offset:   input.Offset,
		}
	}

	products, err := srv.productRepo.ListApproved(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list approved products")
	}

	return products, nil
}

// GetByID returns a product and counts the view. The counter bump is
// best-effort; a failed increment never fails the read.
func (srv *catalogService) GetByID(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	if err := srv.productRepo.IncrementViewCount(ctx, productID); err != nil {
		srv.log(ctx).Warn("Failed to count product view", slog.Any("productID", productID), slog.Any("error", err))
	} else {
		product.ViewCount++
	}

	return product, nil
}

// ListMine returns all of the caller's own listings regardless of status.
func (srv *catalogService) ListMine(ctx context.Context, actorID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListBySeller(ctx, actorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list own products")
	}

	return products, nil
}

// CreateProduct validates the listing, evaluates the creation policy against
// the actor's role and verification state, and persists the listing with its
// initial moderation status.
func (srv *catalogService) CreateProduct(ctx context.Context, actorID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.SalePrice != nil && *input.SalePrice >= input.Price {
		return nil, salePriceError()
	}

	actor, err := srv.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanCreateProduct(actor); err != nil {
		srv.log(ctx).Warn("Product creation denied",
			slog.Any("userID", actorID),
			slog.String("role", actor.Role.String()),
			slog.String("verification", actor.VerificationStatus.String()))

		return nil, errors.Wrap(err, "product creation denied")
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Brand:       input.Brand,
		SellerID:    actor.ID,
		SellerName:  actor.Name,
		Status:      policy.InitialProductStatus(actor, srv.sellerAutoApprove),
		Stock:       input.Stock,
		SKU:         input.SKU,
		Tags:        input.Tags,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.Any("productID", product.ID),
		slog.Any("sellerID", actor.ID),
		slog.String("status", product.Status.String()))

	return product, nil
}

// UpdateProduct applies a partial edit after re-running the creation rules on
// the changed fields. A non-admin edit always sends the listing back to
// pending moderation, whatever fields changed; admin edits never do.
func (srv *catalogService) UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	actor, err := srv.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Product
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to load product for update")
		}

		if err := policy.CanModifyProduct(actor, product); err != nil {
			return errors.Wrap(err, "product update denied")
		}

		applyProductUpdate(product, input)
		if product.SalePrice != nil && *product.SalePrice >= product.Price {
			return salePriceError()
		}

		if !actor.IsAdmin() {
			product.Status = entity.ProductPending
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to persist product update")
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute product update transaction")
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", productID), slog.Any("actorID", actorID))

	return updated, nil
}

// DeleteProduct removes a listing permanently under the same
// ownership-or-admin rule as updates.
func (srv *catalogService) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	actor, err := srv.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to load product for deletion")
		}

		if err := policy.CanModifyProduct(actor, product); err != nil {
			return errors.Wrap(err, "product deletion denied")
		}

		if err := productRepo.Delete(ctx, productID); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute product deletion transaction")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", productID), slog.Any("actorID", actorID))

	return nil
}

// AddReview appends one review per (product, user) pair and rederives the
// rating aggregates. The whole append-and-recompute runs in one transaction
// holding the product row lock, so concurrent reviewers serialize instead of
// losing updates; the unique review constraint backs the duplicate check.
func (srv *catalogService) AddReview(ctx context.Context, actorID, productID uuid.UUID, input *usecase.AddReviewInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var reviewed *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		userRepo := repoFactory.UserRepo()

		product, err := productRepo.FindByIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to load product for review")
		}

		if product.HasReviewBy(actorID) {
			return domainerrors.ErrDuplicateReview.WrapMessage("one review per product per user")
		}

		reviewer, err := userRepo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("reviewer not found")
			}

			return errors.Wrap(err, "failed to load reviewer")
		}

		product.AddReview(&entity.Review{
			UserID:       reviewer.ID,
			ReviewerName: reviewer.Name,
			Rating:       input.Rating,
			Comment:      input.Comment,
		})

		if err := productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return domainerrors.ErrDuplicateReview.WrapMessage("one review per product per user")
			}

			return errors.Wrap(err, "failed to persist review")
		}
		reviewed = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute review transaction")
	}

	srv.log(ctx).Info("Review added",
		slog.Any("productID", productID),
		slog.Any("reviewerID", actorID),
		slog.Float64("rating", reviewed.Rating),
		slog.Int("numReviews", reviewed.NumReviews))

	return reviewed, nil
}

// SellerStats summarizes the caller's catalog for the seller dashboard.
func (srv *catalogService) SellerStats(ctx context.Context, actorID uuid.UUID) (*usecase.SellerStatsOutput, error) {
	actor, err := srv.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSeller() {
		return nil, errors.Wrap(domainerrors.ErrSellerRoleRequired, "seller dashboard denied")
	}

	total, err := srv.productRepo.CountBySeller(ctx, actorID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count seller products")
	}

	approved := entity.ProductApproved
	approvedCount, err := srv.productRepo.CountBySeller(ctx, actorID, &approved)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count approved seller products")
	}

	pending := entity.ProductPending
	pendingCount, err := srv.productRepo.CountBySeller(ctx, actorID, &pending)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count pending seller products")
	}

	views, err := srv.productRepo.SumViewsBySeller(ctx, actorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum seller product views")
	}

	return &usecase.SellerStatsOutput{
		TotalProducts:    total,
		ApprovedProducts: approvedCount,
		PendingProducts:  pendingCount,
		TotalViews:       views,
	}, nil
}

// RecentProducts returns the caller's newest listings for the dashboard.
func (srv *catalogService) RecentProducts(ctx context.Context, actorID uuid.UUID) ([]*entity.Product, error) {
	actor, err := srv.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSeller() {
		return nil, errors.Wrap(domainerrors.ErrSellerRoleRequired, "seller dashboard denied")
	}

	products, err := srv.productRepo.ListRecentBySeller(ctx, actorID, recentProductsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent seller products")
	}

	return products, nil
}

func (srv *catalogService) loadActor(ctx context.Context, actorID uuid.UUID) (*entity.User, error) {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("acting user not found")
		}

		return nil, errors.Wrap(err, "failed to load acting user")
	}

	return actor, nil
}

func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.SalePrice != nil {
		product.SalePrice = input.SalePrice
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
}
