package impl

import (
	"context"
	"testing"

	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	"pressmart/internal/domain/repository"
	mockRepo "pressmart/internal/mocks/repository"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	service     usecase.CatalogUsecase
	userRepo    *mockRepo.MockUserRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCatalogService(t *testing.T, sellerAutoApprove bool) catalogServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	txManager := &mockRepo.PassthroughTransactionManager{
		Factory: &mockRepo.StaticRepositoryFactory{
			Users:    userRepo,
			Products: productRepo,
		},
	}

	service := NewCatalogService(CatalogServiceParams{
		TxManager:   txManager,
		UserRepo:    userRepo,
		ProductRepo: productRepo,
		Config:      newTestConfig(sellerAutoApprove),
		Logger:      newDiscardLogger(),
	})

	return catalogServiceFixtures{
		service:     service,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

func newTestSeller() *entity.User {
	user := entity.NewUser("Seller Sam", "sam@example.com", "hash")
	user.ID = uuid.New()
	user.ChangeRole(entity.RoleSeller)

	return user
}

func validCreateProductInput() *usecase.CreateProductInput {
	return &usecase.CreateProductInput{
		Name:        "Wireless Headphones",
		Price:       129.99,
		Description: "Over-ear wireless headphones with noise cancelling.",
		ImageURL:    "https://cdn.example.com/headphones.jpg",
		Category:    "electronics",
		Brand:       "Soundly",
		Stock:       25,
	}
}

func TestCatalogService_CreateProduct_SellerGoesToPending(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()
	seller := newTestSeller()

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Product).ID = uuid.New()
		}).
		Return(nil)

	product, err := fx.service.CreateProduct(ctx, seller.ID, validCreateProductInput())

	require.NoError(t, err)
	assert.Equal(t, entity.ProductPending, product.Status)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, seller.Name, product.SellerName)
}

func TestCatalogService_CreateProduct_SellerAutoApprove(t *testing.T) {
	fx := createTestCatalogService(t, true)
	ctx := context.Background()
	seller := newTestSeller()

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := fx.service.CreateProduct(ctx, seller.ID, validCreateProductInput())

	require.NoError(t, err)
	assert.Equal(t, entity.ProductApproved, product.Status)
}

func TestCatalogService_CreateProduct_AdminSkipsModeration(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	admin := entity.NewUser("Admin", "admin@example.com", "hash")
	admin.ID = uuid.New()
	admin.ChangeRole(entity.RoleAdmin)

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := fx.service.CreateProduct(ctx, admin.ID, validCreateProductInput())

	require.NoError(t, err)
	assert.Equal(t, entity.ProductApproved, product.Status)
}

func TestCatalogService_CreateProduct_CustomerDenied(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	customer := entity.NewUser("Customer", "customer@example.com", "hash")
	customer.ID = uuid.New()

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	product, err := fx.service.CreateProduct(ctx, customer.ID, validCreateProductInput())

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrSellerRoleRequired))
}

func TestCatalogService_CreateProduct_PendingManufacturerDenied(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	manufacturer := entity.NewUser("Maker", "maker@example.com", "hash")
	manufacturer.ID = uuid.New()
	manufacturer.ChangeRole(entity.RoleManufacturer)

	fx.userRepo.On("FindByID", ctx, manufacturer.ID).Return(manufacturer, nil)

	product, err := fx.service.CreateProduct(ctx, manufacturer.ID, validCreateProductInput())

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationPending))
}

func TestCatalogService_CreateProduct_SalePriceMustUndercutPrice(t *testing.T) {
	fx := createTestCatalogService(t, false)

	input := validCreateProductInput()
	salePrice := input.Price
	input.SalePrice = &salePrice

	product, err := fx.service.CreateProduct(context.Background(), uuid.New(), input)

	assert.Nil(t, product)
	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields(), "salePrice")
}

func TestCatalogService_GetByID_CountsView(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	productID := uuid.New()
	stored := &entity.Product{ID: productID, Name: "Lamp", ViewCount: 7}

	fx.productRepo.On("FindByID", ctx, productID).Return(stored, nil)
	fx.productRepo.On("IncrementViewCount", ctx, productID).Return(nil)

	product, err := fx.service.GetByID(ctx, productID)

	require.NoError(t, err)
	assert.Equal(t, 8, product.ViewCount)
}

func TestCatalogService_GetByID_ViewCountFailureIsNotFatal(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	productID := uuid.New()
	stored := &entity.Product{ID: productID, Name: "Lamp", ViewCount: 7}

	fx.productRepo.On("FindByID", ctx, productID).Return(stored, nil)
	fx.productRepo.On("IncrementViewCount", ctx, productID).
		Return(errors.New("connection reset"))

	product, err := fx.service.GetByID(ctx, productID)

	require.NoError(t, err)
	assert.Equal(t, 7, product.ViewCount)
}

func TestCatalogService_GetByID_NotFound(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	productID := uuid.New()
	fx.productRepo.On("FindByID", ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.GetByID(ctx, productID)

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_UpdateProduct_NonAdminEditResetsModeration(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()
	seller := newTestSeller()

	productID := uuid.New()
	stored := &entity.Product{
		ID:       productID,
		Name:     "Old Name",
		Price:    50,
		SellerID: seller.ID,
		Status:   entity.ProductApproved,
	}

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)
	fx.productRepo.On("Update", ctx, stored).Return(nil)

	newName := "New Name"
	updated, err := fx.service.UpdateProduct(ctx, seller.ID, productID, &usecase.UpdateProductInput{
		Name: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, entity.ProductPending, updated.Status)
}

func TestCatalogService_UpdateProduct_AdminEditKeepsStatus(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	admin := entity.NewUser("Admin", "admin@example.com", "hash")
	admin.ID = uuid.New()
	admin.ChangeRole(entity.RoleAdmin)

	productID := uuid.New()
	stored := &entity.Product{
		ID:       productID,
		Name:     "Old Name",
		Price:    50,
		SellerID: uuid.New(),
		Status:   entity.ProductApproved,
	}

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)
	fx.productRepo.On("Update", ctx, stored).Return(nil)

	newPrice := 60.0
	updated, err := fx.service.UpdateProduct(ctx, admin.ID, productID, &usecase.UpdateProductInput{
		Price: &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.Price)
	assert.Equal(t, entity.ProductApproved, updated.Status)
}

func TestCatalogService_UpdateProduct_StrangerDenied(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()
	stranger := newTestSeller()

	productID := uuid.New()
	stored := &entity.Product{ID: productID, SellerID: uuid.New(), Status: entity.ProductApproved}

	fx.userRepo.On("FindByID", ctx, stranger.ID).Return(stranger, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)

	newName := "Hijacked"
	updated, err := fx.service.UpdateProduct(ctx, stranger.ID, productID, &usecase.UpdateProductInput{
		Name: &newName,
	})

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrNotProductOwner))
}

func TestCatalogService_DeleteProduct_OwnerSucceeds(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()
	seller := newTestSeller()

	productID := uuid.New()
	stored := &entity.Product{ID: productID, SellerID: seller.ID}

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
	fx.productRepo.On("FindByID", ctx, productID).Return(stored, nil)
	fx.productRepo.On("Delete", ctx, productID).Return(nil)

	err := fx.service.DeleteProduct(ctx, seller.ID, productID)

	require.NoError(t, err)
}

func TestCatalogService_AddReview_RecomputesAggregates(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	reviewer := entity.NewUser("Rita", "rita@example.com", "hash")
	reviewer.ID = uuid.New()

	productID := uuid.New()
	stored := &entity.Product{
		ID:         productID,
		Status:     entity.ProductApproved,
		Rating:     4.0,
		NumReviews: 1,
		Reviews: []*entity.Review{
			{ID: uuid.New(), ProductID: productID, UserID: uuid.New(), Rating: 4},
		},
	}

	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)
	fx.userRepo.On("FindByID", ctx, reviewer.ID).Return(reviewer, nil)
	fx.productRepo.On("Update", ctx, stored).Return(nil)

	product, err := fx.service.AddReview(ctx, reviewer.ID, productID, &usecase.AddReviewInput{
		Rating:  5,
		Comment: "Great product, arrived quickly.",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, product.NumReviews)
	assert.InDelta(t, 4.5, product.Rating, 0.001)
	assert.Equal(t, "Rita", product.Reviews[1].ReviewerName)
}

func TestCatalogService_AddReview_DuplicateRejected(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	reviewerID := uuid.New()
	productID := uuid.New()
	stored := &entity.Product{
		ID:         productID,
		Status:     entity.ProductApproved,
		NumReviews: 1,
		Reviews: []*entity.Review{
			{ID: uuid.New(), ProductID: productID, UserID: reviewerID, Rating: 3},
		},
	}

	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)

	product, err := fx.service.AddReview(ctx, reviewerID, productID, &usecase.AddReviewInput{
		Rating:  5,
		Comment: "Trying to review twice.",
	})

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateReview))
}

func TestCatalogService_AddReview_DuplicateCaughtByConstraint(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	reviewer := entity.NewUser("Rita", "rita@example.com", "hash")
	reviewer.ID = uuid.New()

	productID := uuid.New()
	stored := &entity.Product{ID: productID, Status: entity.ProductApproved}

	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)
	fx.userRepo.On("FindByID", ctx, reviewer.ID).Return(reviewer, nil)
	fx.productRepo.On("Update", ctx, stored).Return(repository.ErrDuplicateReview)

	product, err := fx.service.AddReview(ctx, reviewer.ID, productID, &usecase.AddReviewInput{
		Rating:  5,
		Comment: "Raced against myself.",
	})

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateReview))
}

func TestCatalogService_SellerStats_Success(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()
	seller := newTestSeller()

	approved := entity.ProductApproved
	pending := entity.ProductPending

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
	fx.productRepo.On("CountBySeller", ctx, seller.ID, (*entity.ProductStatus)(nil)).Return(int64(10), nil)
	fx.productRepo.On("CountBySeller", ctx, seller.ID, &approved).Return(int64(7), nil)
	fx.productRepo.On("CountBySeller", ctx, seller.ID, &pending).Return(int64(3), nil)
	fx.productRepo.On("SumViewsBySeller", ctx, seller.ID).Return(int64(1234), nil)

	stats, err := fx.service.SellerStats(ctx, seller.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalProducts)
	assert.Equal(t, int64(7), stats.ApprovedProducts)
	assert.Equal(t, int64(3), stats.PendingProducts)
	assert.Equal(t, int64(1234), stats.TotalViews)
}

func TestCatalogService_SellerStats_CustomerDenied(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	customer := entity.NewUser("Customer", "customer@example.com", "hash")
	customer.ID = uuid.New()

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	stats, err := fx.service.SellerStats(ctx, customer.ID)

	assert.Nil(t, stats)
	assert.True(t, errors.Is(err, domainerrors.ErrSellerRoleRequired))
}

func TestCatalogService_RecentProducts_LimitsToDashboardSize(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()
	seller := newTestSeller()

	recent := []*entity.Product{{ID: uuid.New()}, {ID: uuid.New()}}

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
	fx.productRepo.On("ListRecentBySeller", ctx, seller.ID, recentProductsLimit).Return(recent, nil)

	products, err := fx.service.RecentProducts(ctx, seller.ID)

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogService_ListApproved_PassesFilter(t *testing.T) {
	fx := createTestCatalogService(t, false)
	ctx := context.Background()

	filter := repository.ProductFilter{Category: "electronics", Search: "lamp", Limit: 20, Offset: 40}
	fx.productRepo.On("ListApproved", ctx, filter).Return([]*entity.Product{}, nil)

	products, err := fx.service.ListApproved(ctx, &usecase.ListProductsInput{
		Category: "electronics",
		Search:   "lamp",
		Limit:    20,
		Offset:   40,
	})

	require.NoError(t, err)
	assert.Empty(t, products)
}
