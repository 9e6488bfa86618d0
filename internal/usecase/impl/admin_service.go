package impl

import (
	"context"
	"log/slog"

	deliverycontext "pressmart/internal/delivery/context"
	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	"pressmart/internal/domain/repository"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireAdmin resolves the acting identity and refuses everything below the
// admin role. Authorization lives here rather than in middleware because the
// access token carries no role claim; the role is always read fresh from
// storage.
func (srv *adminService) requireAdmin(ctx context.Context, actorID uuid.UUID) (*entity.User, error) {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("acting user not found")
		}

		return nil, errors.Wrap(err, "failed to load acting user")
	}

	if !actor.IsAdmin() {
		srv.log(ctx).Warn("Admin operation denied",
			slog.Any("userID", actorID),
			slog.String("role", actor.Role.String()))

		return nil, errors.Wrap(domainerrors.ErrAdminRequired, "admin privileges required")
	}

	return actor, nil
}

// ListUsers returns every account on the platform.
func (srv *adminService) ListUsers(ctx context.Context, actorID uuid.UUID) ([]*entity.User, error) {
	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// ListPendingManufacturers returns the admin review queue of manufacturer
// applications awaiting a decision.
func (srv *adminService) ListPendingManufacturers(ctx context.Context, actorID uuid.UUID) ([]*entity.User, error) {
	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := srv.userRepo.ListPendingManufacturers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending manufacturers")
	}

	return users, nil
}

// UpdateUserRole reassigns a target account's role. The verification state is
// recomputed by the role transition itself, so moving an account into the
// manufacturer role parks it in pending review.
func (srv *adminService) UpdateUserRole(ctx context.Context, actorID, targetID uuid.UUID, input *usecase.UpdateUserRoleInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	newRole := entity.Role(input.Role)
	if !newRole.IsValid() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role " + input.Role)
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		target, err := userRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("target user not found")
			}

			return errors.Wrap(err, "failed to load target user")
		}

		target.ChangeRole(newRole)
		if err := userRepo.Update(ctx, target); err != nil {
			return errors.Wrap(err, "failed to persist role change")
		}
		updated = target

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute role change transaction")
	}

	srv.log(ctx).Info("User role changed",
		slog.Any("targetID", targetID),
		slog.String("role", input.Role),
		slog.Any("adminID", actorID))

	return updated, nil
}

// UpdateUserVerification records the admin's decision on a manufacturer
// application. Only manufacturer accounts carry a meaningful verification
// state; decisions on any other role are refused.
func (srv *adminService) UpdateUserVerification(ctx context.Context, actorID, targetID uuid.UUID, input *usecase.UpdateUserVerificationInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	newStatus := entity.VerificationStatus(input.VerificationStatus)
	if !newStatus.IsValid() {
		return nil, domainerrors.ErrInvalidStatus.WrapMessage("unknown verification status " + input.VerificationStatus)
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		target, err := userRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("target user not found")
			}

			return errors.Wrap(err, "failed to load target user")
		}

		if target.Role != entity.RoleManufacturer {
			return domainerrors.ErrNotManufacturer.WrapMessage("verification only applies to manufacturers")
		}

		target.VerificationStatus = newStatus
		if err := userRepo.Update(ctx, target); err != nil {
			return errors.Wrap(err, "failed to persist verification decision")
		}
		updated = target

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute verification transaction")
	}

	srv.log(ctx).Info("Manufacturer verification updated",
		slog.Any("targetID", targetID),
		slog.String("verificationStatus", input.VerificationStatus),
		slog.Any("adminID", actorID))

	return updated, nil
}

// ListAllProducts returns the full catalog regardless of moderation state.
func (srv *adminService) ListAllProducts(ctx context.Context, actorID uuid.UUID) ([]*entity.Product, error) {
	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	products, err := srv.productRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all products")
	}

	return products, nil
}

// SetProductStatus records the moderation decision on a listing.
func (srv *adminService) SetProductStatus(ctx context.Context, actorID, productID uuid.UUID, input *usecase.SetProductStatusInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	newStatus := entity.ProductStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, domainerrors.ErrInvalidStatus.WrapMessage("unknown product status " + input.Status)
	}

	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to load product for moderation")
		}

		product.Status = newStatus
		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to persist moderation decision")
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute moderation transaction")
	}

	srv.log(ctx).Info("Product moderation updated",
		slog.Any("productID", productID),
		slog.String("status", input.Status),
		slog.Any("adminID", actorID))

	return updated, nil
}

// Stats aggregates the platform counters for the admin dashboard.
func (srv *adminService) Stats(ctx context.Context, actorID uuid.UUID) (*usecase.StatsOutput, error) {
	if _, err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	totalUsers, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	totalProducts, err := srv.productRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	totalManufacturers, err := srv.userRepo.CountByRole(ctx, entity.RoleManufacturer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count manufacturers")
	}

	pendingApprovals, err := srv.userRepo.CountPendingManufacturers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count pending manufacturers")
	}

	return &usecase.StatsOutput{
		TotalUsers:         totalUsers,
		TotalProducts:      totalProducts,
		TotalManufacturers: totalManufacturers,
		PendingApprovals:   pendingApprovals,
	}, nil
}
