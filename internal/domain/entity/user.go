// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record of the system. A user owns zero or more
// calculations; the password is stored only as a bcrypt hash and is never
// serialized out of the service.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // The unique login name chosen at registration.
	Email        string    // The user's unique, format-validated email address.
	PasswordHash string    // The bcrypt hash of the user's password. Never exposed.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
