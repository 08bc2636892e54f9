// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"tally/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCalculationNotFound is returned when no calculation matches both the id
// and the owner filter. A row owned by someone else is reported the same way
// as a missing row.
var ErrCalculationNotFound = errors.New("calculation not found")

// CalculationRepository defines the ownership-scoped operations for
// calculation persistence. Every lookup, update and delete carries the owner
// id so the ownership check is folded into the query itself.
type CalculationRepository interface {
	// Create persists a new calculation for its owner.
	Create(ctx context.Context, calc *entity.Calculation) error

	// FindByOwner retrieves a page of the owner's calculations,
	// ordered oldest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*entity.Calculation, error)

	// FindByID retrieves a single calculation matching both id and owner.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Calculation, error)

	// Update saves modified operands, type and result of an owned calculation.
	Update(ctx context.Context, calc *entity.Calculation) error

	// Delete removes a calculation matching both id and owner.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// DeleteByOwner removes every calculation of the given owner.
	// Used when an account is deleted.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
