package impl

import (
	"context"
	"testing"

	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	mockRepo "pressmart/internal/mocks/repository"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminServiceFixtures struct {
	service     usecase.AdminUsecase
	userRepo    *mockRepo.MockUserRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestAdminService(t *testing.T) adminServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	txManager := &mockRepo.PassthroughTransactionManager{
		Factory: &mockRepo.StaticRepositoryFactory{
			Users:    userRepo,
			Products: productRepo,
		},
	}

	service := NewAdminService(AdminServiceParams{
		TxManager:   txManager,
		UserRepo:    userRepo,
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	return adminServiceFixtures{
		service:     service,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

func newTestAdmin() *entity.User {
	admin := entity.NewUser("Admin", "admin@example.com", "hash")
	admin.ID = uuid.New()
	admin.ChangeRole(entity.RoleAdmin)

	return admin
}

func TestAdminService_ListUsers_NonAdminDenied(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	customer := entity.NewUser("Customer", "customer@example.com", "hash")
	customer.ID = uuid.New()

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	users, err := fx.service.ListUsers(ctx, customer.ID)

	assert.Nil(t, users)
	assert.True(t, errors.Is(err, domainerrors.ErrAdminRequired))
}

func TestAdminService_ListUsers_Success(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	all := []*entity.User{admin, entity.NewUser("Other", "other@example.com", "hash")}

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.userRepo.On("List", ctx).Return(all, nil)

	users, err := fx.service.ListUsers(ctx, admin.ID)

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminService_ListPendingManufacturers(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	applicant := entity.NewUser("Maker", "maker@example.com", "hash")
	applicant.ChangeRole(entity.RoleManufacturer)

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.userRepo.On("ListPendingManufacturers", ctx).Return([]*entity.User{applicant}, nil)

	users, err := fx.service.ListPendingManufacturers(ctx, admin.ID)

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, entity.VerificationPending, users[0].VerificationStatus)
}

func TestAdminService_UpdateUserRole_ToManufacturerParksPending(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	target := entity.NewUser("Target", "target@example.com", "hash")
	target.ID = uuid.New()

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.userRepo.On("FindByID", ctx, target.ID).Return(target, nil)
	fx.userRepo.On("Update", ctx, target).Return(nil)

	updated, err := fx.service.UpdateUserRole(ctx, admin.ID, target.ID, &usecase.UpdateUserRoleInput{
		Role: "manufacturer",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleManufacturer, updated.Role)
	assert.Equal(t, entity.VerificationPending, updated.VerificationStatus)
}

func TestAdminService_UpdateUserRole_InvalidRole(t *testing.T) {
	fx := createTestAdminService(t)

	updated, err := fx.service.UpdateUserRole(context.Background(), uuid.New(), uuid.New(), &usecase.UpdateUserRoleInput{
		Role: "superuser",
	})

	assert.Nil(t, updated)
	var validationErr *domainerrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestAdminService_UpdateUserVerification_ApprovesManufacturer(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	target := entity.NewUser("Maker", "maker@example.com", "hash")
	target.ID = uuid.New()
	target.ChangeRole(entity.RoleManufacturer)

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.userRepo.On("FindByID", ctx, target.ID).Return(target, nil)
	fx.userRepo.On("Update", ctx, target).Return(nil)

	updated, err := fx.service.UpdateUserVerification(ctx, admin.ID, target.ID, &usecase.UpdateUserVerificationInput{
		VerificationStatus: "approved",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, updated.VerificationStatus)
	assert.True(t, updated.CanSell())
}

func TestAdminService_UpdateUserVerification_NonManufacturerRefused(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	target := entity.NewUser("Seller", "seller@example.com", "hash")
	target.ID = uuid.New()
	target.ChangeRole(entity.RoleSeller)

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.userRepo.On("FindByID", ctx, target.ID).Return(target, nil)

	updated, err := fx.service.UpdateUserVerification(ctx, admin.ID, target.ID, &usecase.UpdateUserVerificationInput{
		VerificationStatus: "approved",
	})

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrNotManufacturer))
}

func TestAdminService_SetProductStatus_Approve(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	productID := uuid.New()
	stored := &entity.Product{ID: productID, Status: entity.ProductPending}

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, productID).Return(stored, nil)
	fx.productRepo.On("Update", ctx, stored).Return(nil)

	updated, err := fx.service.SetProductStatus(ctx, admin.ID, productID, &usecase.SetProductStatusInput{
		Status: "approved",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ProductApproved, updated.Status)
}

func TestAdminService_SetProductStatus_NonAdminDenied(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	seller := entity.NewUser("Seller", "seller@example.com", "hash")
	seller.ID = uuid.New()
	seller.ChangeRole(entity.RoleSeller)

	fx.userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)

	updated, err := fx.service.SetProductStatus(ctx, seller.ID, uuid.New(), &usecase.SetProductStatusInput{
		Status: "approved",
	})

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrAdminRequired))
}

func TestAdminService_Stats(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	admin := newTestAdmin()

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	fx.userRepo.On("Count", ctx).Return(int64(42), nil)
	fx.productRepo.On("Count", ctx).Return(int64(128), nil)
	fx.userRepo.On("CountByRole", ctx, entity.RoleManufacturer).Return(int64(5), nil)
	fx.userRepo.On("CountPendingManufacturers", ctx).Return(int64(2), nil)

	stats, err := fx.service.Stats(ctx, admin.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(128), stats.TotalProducts)
	assert.Equal(t, int64(5), stats.TotalManufacturers)
	assert.Equal(t, int64(2), stats.PendingApprovals)
}
