// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pressmart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their lowercased email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// List retrieves all users, newest first.
	List(ctx context.Context) ([]*entity.User, error)

	// ListPendingManufacturers retrieves manufacturer accounts awaiting
	// verification, newest first.
	ListPendingManufacturers(ctx context.Context) ([]*entity.User, error)

	// Count returns the total number of registered users.
	Count(ctx context.Context) (int64, error)

	// CountByRole returns the number of users holding the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	// CountPendingManufacturers returns the number of manufacturer accounts
	// awaiting verification.
	CountPendingManufacturers(ctx context.Context) (int64, error)
}
