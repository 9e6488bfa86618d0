package policy

import (
	"testing"

	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanCreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.Role
		status  entity.VerificationStatus
		wantErr error
	}{
		{name: "admin", role: entity.RoleAdmin, status: entity.VerificationApproved, wantErr: nil},
		{name: "seller", role: entity.RoleSeller, status: entity.VerificationApproved, wantErr: nil},
		{name: "approved manufacturer", role: entity.RoleManufacturer, status: entity.VerificationApproved, wantErr: nil},
		{name: "pending manufacturer", role: entity.RoleManufacturer, status: entity.VerificationPending, wantErr: domainerrors.ErrVerificationPending},
		{name: "rejected manufacturer", role: entity.RoleManufacturer, status: entity.VerificationRejected, wantErr: domainerrors.ErrVerificationRejected},
		{name: "customer", role: entity.RoleCustomer, status: entity.VerificationApproved, wantErr: domainerrors.ErrSellerRoleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &entity.User{Role: tt.role, VerificationStatus: tt.status}
			err := CanCreateProduct(user)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanModifyProduct(t *testing.T) {
	owner := &entity.User{ID: uuid.New(), Role: entity.RoleSeller}
	stranger := &entity.User{ID: uuid.New(), Role: entity.RoleSeller}
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	product := &entity.Product{ID: uuid.New(), SellerID: owner.ID}

	require.NoError(t, CanModifyProduct(owner, product))
	require.NoError(t, CanModifyProduct(admin, product))
	assert.ErrorIs(t, CanModifyProduct(stranger, product), domainerrors.ErrNotProductOwner)
}

func TestInitialProductStatus(t *testing.T) {
	admin := &entity.User{Role: entity.RoleAdmin}
	seller := &entity.User{Role: entity.RoleSeller}
	manufacturer := &entity.User{Role: entity.RoleManufacturer, VerificationStatus: entity.VerificationApproved}

	assert.Equal(t, entity.ProductApproved, InitialProductStatus(admin, false))
	assert.Equal(t, entity.ProductApproved, InitialProductStatus(seller, true))
	assert.Equal(t, entity.ProductPending, InitialProductStatus(seller, false))
	// Manufacturer listings always go through moderation, whatever the policy.
	assert.Equal(t, entity.ProductPending, InitialProductStatus(manufacturer, true))
}
