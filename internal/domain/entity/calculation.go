// Package entity contains the core business objects of the project.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for calculation rules. The usecase layer maps these onto the
// HTTP-facing error taxonomy.
var (
	// ErrDivisionByZero is returned when a Divide calculation has a zero divisor.
	ErrDivisionByZero = errors.New("division by zero is not allowed")
	// ErrInvalidCalculationType is returned when an unknown operation string is parsed.
	ErrInvalidCalculationType = errors.New("invalid calculation type")
)

// CalculationType represents the arithmetic operation of a calculation.
// The string values are the wire encoding and must not change.
type CalculationType string

const (
	// CalculationTypeAdd adds the two operands.
	CalculationTypeAdd CalculationType = "Add"
	// CalculationTypeSub subtracts operand b from operand a.
	CalculationTypeSub CalculationType = "Sub"
	// CalculationTypeMultiply multiplies the two operands.
	CalculationTypeMultiply CalculationType = "Multiply"
	// CalculationTypeDivide divides operand a by operand b. Requires b != 0.
	CalculationTypeDivide CalculationType = "Divide"
)

// String returns the string representation of the CalculationType.
func (t CalculationType) String() string {
	return string(t)
}

// IsValid checks if the CalculationType is a valid value.
func (t CalculationType) IsValid() bool {
	switch t {
	case CalculationTypeAdd, CalculationTypeSub, CalculationTypeMultiply, CalculationTypeDivide:
		return true
	default:
		return false
	}
}

// ParseCalculationType converts a wire string into a CalculationType,
// rejecting anything outside the four known operations.
func ParseCalculationType(s string) (CalculationType, error) {
	t := CalculationType(s)
	if !t.IsValid() {
		return "", ErrInvalidCalculationType
	}

	return t, nil
}

// Validate checks the operands against the operation's preconditions.
// The only precondition today is the non-zero divisor for Divide.
func (t CalculationType) Validate(b float64) error {
	if t == CalculationTypeDivide && b == 0 {
		return ErrDivisionByZero
	}

	return nil
}

// Compute applies the operation to the operands. It is pure and deterministic.
// The divisor precondition is re-checked so a caller that skipped Validate
// still cannot produce an Inf result.
func (t CalculationType) Compute(a, b float64) (float64, error) {
	switch t {
	case CalculationTypeAdd:
		return a + b, nil
	case CalculationTypeSub:
		return a - b, nil
	case CalculationTypeMultiply:
		return a * b, nil
	case CalculationTypeDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}

		return a / b, nil
	default:
		return 0, ErrInvalidCalculationType
	}
}

// Calculation is a user-owned arithmetic record. The result is always computed
// by the service, never accepted from a caller.
type Calculation struct {
	ID        uuid.UUID       // The unique identifier for this calculation.
	OwnerID   uuid.UUID       // Links the calculation to the User that created it.
	A         float64         // The first operand.
	B         float64         // The second operand.
	Type      CalculationType // The arithmetic operation.
	Result    float64         // The computed result of applying Type to A and B.
	CreatedAt time.Time       // Timestamp of when this calculation was created.
	UpdatedAt time.Time       // Timestamp of the last edit to this calculation.
}
