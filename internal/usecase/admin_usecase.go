// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pressmart/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateUserRoleInput carries the new role for an admin role change.
type UpdateUserRoleInput struct {
	Role string `json:"role" validate:"required,oneof=customer seller manufacturer admin"`
}

// UpdateUserVerificationInput carries the verification decision for a manufacturer.
type UpdateUserVerificationInput struct {
	VerificationStatus string `json:"verificationStatus" validate:"required,oneof=pending approved rejected"`
}

// SetProductStatusInput carries the moderation decision for a listing.
type SetProductStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// --- Output DTOs ---

// StatsOutput summarizes the platform for the admin dashboard.
type StatsOutput struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalProducts      int64 `json:"totalProducts"`
	TotalManufacturers int64 `json:"totalManufacturers"`
	PendingApprovals   int64 `json:"pendingApprovals"`
}

// AdminUsecase defines the interface for admin-only operations. Every method
// loads the acting identity and refuses non-admin actors.
type AdminUsecase interface {
	ListUsers(ctx context.Context, actorID uuid.UUID) ([]*entity.User, error)
	ListPendingManufacturers(ctx context.Context, actorID uuid.UUID) ([]*entity.User, error)
	UpdateUserRole(ctx context.Context, actorID, targetID uuid.UUID, input *UpdateUserRoleInput) (*entity.User, error)
	UpdateUserVerification(ctx context.Context, actorID, targetID uuid.UUID, input *UpdateUserVerificationInput) (*entity.User, error)
	ListAllProducts(ctx context.Context, actorID uuid.UUID) ([]*entity.Product, error)
	SetProductStatus(ctx context.Context, actorID, productID uuid.UUID, input *SetProductStatusInput) (*entity.Product, error)
	Stats(ctx context.Context, actorID uuid.UUID) (*StatsOutput, error)
}
