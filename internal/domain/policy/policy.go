// Package policy contains the pure authorization rules of the marketplace.
// Every function here is a side-effect-free decision over domain entities;
// the usecase layer evaluates them before touching any state.
package policy

import (
	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
)

// CanCreateProduct decides whether the identity may create a product listing.
// The returned error is nil when allowed; otherwise it is a Forbidden variant
// carrying a reason the caller can distinguish: role ineligible, verification
// pending, or verification rejected.
func CanCreateProduct(user *entity.User) error {
	switch user.Role {
	case entity.RoleAdmin, entity.RoleSeller:
		return nil
	case entity.RoleManufacturer:
		switch user.VerificationStatus {
		case entity.VerificationApproved:
			return nil
		case entity.VerificationPending:
			return domainerrors.ErrVerificationPending
		default:
			return domainerrors.ErrVerificationRejected
		}
	default:
		return domainerrors.ErrSellerRoleRequired
	}
}

// CanModifyProduct decides whether the identity may update or delete the
// product. Admins may modify anything; everyone else only their own listings.
func CanModifyProduct(user *entity.User, product *entity.Product) error {
	if user.IsAdmin() {
		return nil
	}
	if product.SellerID == user.ID {
		return nil
	}

	return domainerrors.ErrNotProductOwner
}

// InitialProductStatus determines the moderation state of a freshly created
// listing. Admin listings go live immediately. Seller auto-approval is a
// configurable policy rather than a fixed rule; manufacturers always start
// pending.
func InitialProductStatus(user *entity.User, sellerAutoApprove bool) entity.ProductStatus {
	if user.Role == entity.RoleAdmin {
		return entity.ProductApproved
	}
	if user.Role == entity.RoleSeller && sellerAutoApprove {
		return entity.ProductApproved
	}

	return entity.ProductPending
}
