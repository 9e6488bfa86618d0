// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a registered account.
// Role and VerificationStatus together form the single source of truth for
// selling rights; seller-ness is derived, never stored.
type User struct {
	ID                 uuid.UUID          // The unique identifier for the user.
	Email              string             // Login identifier, stored lowercased, unique.
	Name               string             // The user's display name.
	PasswordHash       string             // bcrypt hash of the password. Never serialized to clients.
	Role               Role               // customer, seller, manufacturer or admin.
	VerificationStatus VerificationStatus // Admin moderation state, only meaningful for manufacturers.
	CompanyName        string             // Required once the account becomes a manufacturer.
	CompanyDescription string             // Required once the account becomes a manufacturer.
	Phone              string             // Optional contact number.
	Address            string             // Optional shipping/billing address.
	AvatarURL          string             // Optional profile image URL.
	LastLoginAt        *time.Time         // Timestamp of the most recent successful login.
	LoginCount         int                // Number of successful logins.
	CreatedAt          time.Time          // Timestamp of account creation.
	UpdatedAt          time.Time          // Timestamp of the last modification.
}

// NewUser builds a freshly registered account. New registrations always start
// as customers, which need no verification.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		Role:               RoleCustomer,
		VerificationStatus: VerificationApproved,
	}
}

// IsSeller reports whether the account currently holds any selling role.
// It is computed from Role and VerificationStatus instead of being stored,
// so it can never drift out of sync with them. A rejected manufacturer has
// lost its seller standing.
func (u *User) IsSeller() bool {
	switch u.Role {
	case RoleSeller, RoleAdmin:
		return true
	case RoleManufacturer:
		return u.VerificationStatus != VerificationRejected
	default:
		return false
	}
}

// CanSell reports whether the account may create product listings right now.
// Admins and sellers always can; manufacturers only once approved.
func (u *User) CanSell() bool {
	switch u.Role {
	case RoleSeller, RoleAdmin:
		return true
	case RoleManufacturer:
		return u.VerificationStatus == VerificationApproved
	default:
		return false
	}
}

// IsAdmin reports whether the account is a platform administrator.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangeRole moves the account to a new role and recomputes the verification
// state per the domain invariant: only manufacturers ever sit in pending or
// rejected; every other role is always approved. Verification resets to
// pending only on a transition INTO the manufacturer role, so an admin
// re-assigning the same role is a no-op.
func (u *User) ChangeRole(newRole Role) {
	if u.Role == newRole {
		return
	}

	u.Role = newRole
	if newRole == RoleManufacturer {
		u.VerificationStatus = VerificationPending
	} else {
		u.VerificationStatus = VerificationApproved
	}
}

// RecordLogin updates the login bookkeeping fields as a side effect of a
// successful credential check.
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.LoginCount++
}
