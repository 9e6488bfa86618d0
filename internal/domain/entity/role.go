// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an identity can have in the marketplace.
type Role string

const (
	// RoleCustomer indicates a regular shopper with no selling rights.
	RoleCustomer Role = "customer"
	// RoleSeller indicates an approved individual seller.
	RoleSeller Role = "seller"
	// RoleManufacturer indicates a company account that requires admin
	// verification before it gains selling rights.
	RoleManufacturer Role = "manufacturer"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleManufacturer, RoleAdmin:
		return true
	default:
		return false
	}
}

// VerificationStatus represents the admin moderation state of a manufacturer
// account. Non-manufacturer roles are always approved.
type VerificationStatus string

const (
	// VerificationPending means the account awaits admin review.
	VerificationPending VerificationStatus = "pending"
	// VerificationApproved means the account passed admin review.
	VerificationApproved VerificationStatus = "approved"
	// VerificationRejected means the account failed admin review.
	VerificationRejected VerificationStatus = "rejected"
)

// String returns the string representation of the VerificationStatus.
func (s VerificationStatus) String() string {
	return string(s)
}

// IsValid checks if the VerificationStatus is a valid value.
func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	default:
		return false
	}
}
