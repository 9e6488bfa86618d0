// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "pressmart/internal/delivery/context"
	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	"pressmart/internal/domain/repository"
	"pressmart/internal/domain/service"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail lowercases and trims an email so uniqueness checks are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new customer account. Email uniqueness is checked before
// the password is hashed; the unique constraint on the email column backs the
// check against concurrent registrations.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Warn("Registration with existing email", slog.String("email", email))

		return nil, domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := entity.NewUser(input.Name, email, hashedPassword)
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// Login verifies credentials, records the login side effects and issues a
// fresh token pair. Unknown email and wrong password both surface as the same
// InvalidCredentials error; the distinction is only logged.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login with unknown email", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// bcrypt is CPU-bound; keep it outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login with wrong password", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	user.RecordLogin(time.Now())
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to record login")
	}

	tokens, err := srv.tokenService.IssueTokenPair(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Tokens: tokens, User: user}, nil
}

// RefreshToken exchanges a valid refresh token for an entirely new pair.
// Rotation is stateless: the presented token is verified by signature and
// claims alone, and the identity is re-resolved so a deleted account cannot
// keep refreshing.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.AuthOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	userID, err := srv.tokenService.VerifyRefresh(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh with invalid token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh token rejected")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Refresh for missing identity", slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "identity no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user for token refresh")
	}

	tokens, err := srv.tokenService.IssueTokenPair(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue rotated tokens")
	}

	return &usecase.AuthOutput{Tokens: tokens, User: user}, nil
}

// GetProfile returns the identity's own record.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile mutates the self-service fields only. Role and verification
// state are owned by the moderation workflow and never touched here.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("profile not found")
			}

			return errors.Wrap(err, "failed to load user for profile update")
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Address != nil {
			user.Address = *input.Address
		}
		if input.AvatarURL != nil {
			user.AvatarURL = *input.AvatarURL
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return updated, nil
}

// BecomeSeller upgrades a customer to a seller. Sellers need no admin
// verification. A repeated call reports the state it finds without mutating
// anything, so the operation is idempotent in effect.
func (srv *userService) BecomeSeller(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.log(ctx).Info("Processing become-seller request", slog.Any("userID", userID))

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to load user for seller upgrade")
		}

		if user.Role != entity.RoleCustomer {
			return domainerrors.ErrAlreadySeller.WrapMessage("account already holds selling privileges")
		}

		user.ChangeRole(entity.RoleSeller)
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to persist seller upgrade")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute seller upgrade transaction")
	}

	srv.log(ctx).Info("User upgraded to seller", slog.Any("userID", userID))

	return updated, nil
}

// BecomeManufacturer files a manufacturer application. The account moves to
// pending verification and keeps no selling rights until an admin approves.
func (srv *userService) BecomeManufacturer(ctx context.Context, userID uuid.UUID, input *usecase.BecomeManufacturerInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Processing manufacturer application", slog.Any("userID", userID))

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to load user for manufacturer application")
		}

		if user.Role == entity.RoleManufacturer {
			return domainerrors.ErrAlreadyManufacturer.WrapMessage("manufacturer application already filed")
		}

		user.ChangeRole(entity.RoleManufacturer)
		user.CompanyName = input.CompanyName
		user.CompanyDescription = input.CompanyDescription

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to persist manufacturer application")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute manufacturer application transaction")
	}

	srv.log(ctx).Info("Manufacturer application submitted", slog.Any("userID", userID))

	return updated, nil
}
