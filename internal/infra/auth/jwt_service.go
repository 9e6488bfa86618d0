// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"time"

	"pressmart/config"
	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"
	"pressmart/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard. Access and refresh tokens are signed with distinct secrets
// and carry a type claim, so a refresh token can never pass as an access token
// even if both secrets were configured identically.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	issuer        string
	audience      string
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.JWT.AccessSecret,
		refreshSecret: cfg.JWT.RefreshSecret,
		accessTTL:     cfg.JWT.AccessTTL,
		refreshTTL:    cfg.JWT.RefreshTTL,
		issuer:        cfg.JWT.Issuer,
		audience:      cfg.JWT.Audience,
	}, nil
}

// IssueTokenPair creates a fresh access and refresh token for a user.
func (s *jwtService) IssueTokenPair(userID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, err := s.generateToken(userID, s.accessTTL, s.accessSecret, tokenTypeAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := s.generateToken(userID, s.refreshTTL, s.refreshSecret, tokenTypeRefresh)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccess validates an access token and returns the subject identity.
func (s *jwtService) VerifyAccess(tokenString string) (uuid.UUID, error) {
	return s.verifyToken(tokenString, s.accessSecret, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns the subject identity.
func (s *jwtService) VerifyRefresh(tokenString string) (uuid.UUID, error) {
	return s.verifyToken(tokenString, s.refreshSecret, tokenTypeRefresh)
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, ttl time.Duration, secret, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),       // Subject (who the token is for)
		"iat":  now.Unix(),            // Issued At
		"exp":  now.Add(ttl).Unix(),   // Expiration Time
		"iss":  s.issuer,              // Issuer
		"aud":  s.audience,            // Audience
		"type": tokenType,             // Type of token (access or refresh)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// verifyToken parses and validates a token against a secret and the expected
// type claim. Every failure mode collapses into the single invalid-token
// domain error.
func (s *jwtService) verifyToken(tokenString, secret, expectedType string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("unexpected claims shape")
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != expectedType {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("wrong token type " + tokenType)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("missing subject claim")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("malformed subject claim")
	}

	return userID, nil
}

// ExtractBearer pulls the token out of an Authorization header value. The
// header must be exactly two space-separated parts with the literal scheme
// "Bearer"; anything else is rejected.
func ExtractBearer(header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Wrap(domainerrors.ErrInvalidToken, "malformed authorization header")
	}

	return parts[1], nil
}
