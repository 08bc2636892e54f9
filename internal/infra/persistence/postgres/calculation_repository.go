// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// calculationRepository implements the domain.CalculationRepository interface using GORM.
// Every query that touches a single row carries the owner id in its WHERE
// clause, so ownership is enforced by the database lookup itself.
type calculationRepository struct {
	db *gorm.DB
}

// NewCalculationRepository is the constructor for calculationRepository.
func NewCalculationRepository(db *gorm.DB) repository.CalculationRepository {
	return &calculationRepository{db: db}
}

// Create persists a new calculation for its owner.
func (repo *calculationRepository) Create(ctx context.Context, calc *entity.Calculation) error {
	calcM := fromCalculationDomain(calc)

	if err := repo.db.WithContext(ctx).Create(calcM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WrapMessage("missing required calculation fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create calculation")
	}

	calc.ID = calcM.ID
	calc.CreatedAt = calcM.CreatedAt
	calc.UpdatedAt = calcM.UpdatedAt

	return nil
}

// FindByOwner retrieves a page of the owner's calculations, oldest first.
func (repo *calculationRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*entity.Calculation, error) {
	var calcModels []*model.CalculationModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&calcModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list calculations")
	}

	calcs := make([]*entity.Calculation, 0, len(calcModels))
	for _, calcM := range calcModels {
		calcs = append(calcs, toCalculationDomain(calcM))
	}

	return calcs, nil
}

// FindByID retrieves a single calculation matching both id and owner.
// A row owned by another user is indistinguishable from a missing one.
func (repo *calculationRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Calculation, error) {
	var calcM model.CalculationModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&calcM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCalculationNotFound
		}

		return nil, errors.Wrap(err, "failed to find calculation by id")
	}

	return toCalculationDomain(&calcM), nil
}

// Update saves the operands, type and recomputed result of an owned calculation.
func (repo *calculationRepository) Update(ctx context.Context, calc *entity.Calculation) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CalculationModel{}).
		Where("id = ? AND user_id = ?", calc.ID, calc.OwnerID).
		Updates(map[string]any{
			"a":      calc.A,
			"b":      calc.B,
			"type":   calc.Type.String(),
			"result": calc.Result,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update calculation")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCalculationNotFound
	}

	return nil
}

// Delete removes a calculation matching both id and owner.
func (repo *calculationRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.CalculationModel{})

	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	// If no rows were affected, it means the calculation was not found (or not owned).
	if result.RowsAffected == 0 {
		return repository.ErrCalculationNotFound
	}

	return nil
}

// DeleteByOwner removes every calculation of the given owner.
func (repo *calculationRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&model.CalculationModel{}).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// --- Mapper Functions ---

// toCalculationDomain converts a GORM CalculationModel to a domain Calculation entity.
func toCalculationDomain(data *model.CalculationModel) *entity.Calculation {
	if data == nil {
		return nil
	}

	return &entity.Calculation{
		ID:        data.ID,
		OwnerID:   data.UserID,
		A:         data.A,
		B:         data.B,
		Type:      entity.CalculationType(data.Type),
		Result:    data.Result,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCalculationDomain converts a domain Calculation entity to a GORM CalculationModel.
func fromCalculationDomain(data *entity.Calculation) *model.CalculationModel {
	if data == nil {
		return nil
	}

	return &model.CalculationModel{
		ID:     data.ID,
		UserID: data.OwnerID,
		A:      data.A,
		B:      data.B,
		Type:   data.Type.String(),
		Result: data.Result,
	}
}
