// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pressmart/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput carries the refresh token to exchange for a fresh pair.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileInput defines the self-service mutable profile fields.
// Role and verification state are never mutable here.
type UpdateProfileInput struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,image_url"`
}

// BecomeManufacturerInput defines the company data a manufacturer application requires.
type BecomeManufacturerInput struct {
	CompanyName        string `json:"companyName" validate:"required,min=2,max=200"`
	CompanyDescription string `json:"companyDescription" validate:"required,min=10,max=1000"`
}

// --- Output DTOs ---

// AuthOutput returns the issued tokens together with the authenticated user.
type AuthOutput struct {
	Tokens *entity.TokenPair
	User   *entity.User
}

// UserUsecase defines the interface for identity-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*AuthOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	BecomeSeller(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	BecomeManufacturer(ctx context.Context, userID uuid.UUID, input *BecomeManufacturerInput) (*entity.User, error)
}
