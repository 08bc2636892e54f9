package usecase

import (
	"context"

	"tally/internal/domain/entity"

	"github.com/google/uuid"
)

// CalculationInput carries the user-supplied operands and operation type.
// The result is never accepted from the caller; it is always recomputed here.
type CalculationInput struct {
	A    float64
	B    float64
	Type entity.CalculationType
}

// ListCalculationsInput defines the pagination window for browsing calculations.
type ListCalculationsInput struct {
	Skip  int
	Limit int
}

// CalculationUsecase defines the interface for calculation business operations.
// Every operation is scoped to the owner identified by the access token, so a
// calculation belonging to another user behaves exactly like a missing one.
type CalculationUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CalculationInput) (*entity.Calculation, error)
	List(ctx context.Context, ownerID uuid.UUID, input ListCalculationsInput) ([]*entity.Calculation, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Calculation, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input CalculationInput) (*entity.Calculation, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
