package service

import (
	"errors"
	"time"

	"tally/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure kinds. The delivery layer collapses all three into a
// single 401, but tests and logs need to tell them apart.
var (
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned when the token cannot be parsed or decoded.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignatureInvalid is returned when the signature does not verify.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// Claims defines the custom claims embedded in issued access tokens.
// The JSON field names are the wire contract.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed access token carrying the user's identity claims.
	Issue(user *entity.User) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// It fails with ErrTokenExpired, ErrTokenMalformed or
	// ErrTokenSignatureInvalid and never returns claims of an unverified token.
	Verify(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the configured lifetime of issued tokens.
	AccessTokenTTL() time.Duration
}
