package service

import (
	"pressmart/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and verifying the signed
// bearer tokens that carry a session. This abstracts the JWT details from the
// use cases.
type TokenService interface {
	// IssueTokenPair creates a fresh access+refresh token pair for a user.
	IssueTokenPair(userID uuid.UUID) (*entity.TokenPair, error)

	// VerifyAccess validates an access token and returns the embedded user ID.
	// It fails on a bad signature, expiry, issuer/audience mismatch, or a
	// non-access token type.
	VerifyAccess(token string) (uuid.UUID, error)

	// VerifyRefresh validates a refresh token and returns the embedded user ID,
	// with the same checks against the refresh secret and type.
	VerifyRefresh(token string) (uuid.UUID, error)
}
