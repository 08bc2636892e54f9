package impl

import (
	"context"
	"log/slog"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultListLimit = 100

// calculationService implements the CalculationUsecase interface.
type calculationService struct {
	txManager repository.TransactionManager
	calcRepo  repository.CalculationRepository
	logger    *slog.Logger
}

// CalculationServiceParams holds dependencies for CalculationService, injected by Fx.
type CalculationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CalcRepo  repository.CalculationRepository
	Logger    *slog.Logger
}

// NewCalculationService is the constructor for calculationService.
func NewCalculationService(params CalculationServiceParams) usecase.CalculationUsecase {
	return &calculationService{
		txManager: params.TxManager,
		calcRepo:  params.CalcRepo,
		logger:    params.Logger,
	}
}

// Create validates the operands, computes the result and persists the new
// calculation. Division by zero is rejected before anything touches the
// database.
func (srv *calculationService) Create(ctx context.Context, ownerID uuid.UUID, input usecase.CalculationInput) (*entity.Calculation, error) {
	result, err := computeResult(input)
	if err != nil {
		return nil, err
	}

	calc := &entity.Calculation{
		OwnerID: ownerID,
		A:       input.A,
		B:       input.B,
		Type:    input.Type,
		Result:  result,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CalculationRepo().Create(ctx, calc)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Calculation created",
		slog.String("calculationID", calc.ID.String()),
		slog.String("type", calc.Type.String()),
	)

	return calc, nil
}

// List returns a page of the owner's calculations in creation order.
func (srv *calculationService) List(ctx context.Context, ownerID uuid.UUID, input usecase.ListCalculationsInput) ([]*entity.Calculation, error) {
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}

	limit := input.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	calcs, err := srv.calcRepo.FindByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list calculations")
	}

	return calcs, nil
}

// Get returns a single calculation owned by the caller.
func (srv *calculationService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Calculation, error) {
	calc, err := srv.calcRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return nil, domainerrors.ErrCalculationNotFound
		}

		return nil, errors.Wrap(err, "failed to get calculation")
	}

	return calc, nil
}

// Update replaces the operands and type of an owned calculation and recomputes
// its result. The stored result never survives an operand change.
func (srv *calculationService) Update(ctx context.Context, ownerID, id uuid.UUID, input usecase.CalculationInput) (*entity.Calculation, error) {
	result, err := computeResult(input)
	if err != nil {
		return nil, err
	}

	var updated *entity.Calculation
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		calcRepo := repoFactory.CalculationRepo()

		calc, err := calcRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		calc.A = input.A
		calc.B = input.B
		calc.Type = input.Type
		calc.Result = result

		if err := calcRepo.Update(ctx, calc); err != nil {
			return err
		}

		// Re-read so the caller sees the row as stored, updated_at included.
		fresh, err := calcRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		updated = fresh

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return nil, domainerrors.ErrCalculationNotFound
		}

		return nil, err
	}

	srv.logger.Info("Calculation updated", slog.String("calculationID", id.String()))

	return updated, nil
}

// Delete removes an owned calculation.
func (srv *calculationService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CalculationRepo().Delete(ctx, ownerID, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return domainerrors.ErrCalculationNotFound
		}

		return err
	}

	srv.logger.Info("Calculation deleted", slog.String("calculationID", id.String()))

	return nil
}

// computeResult validates the input and evaluates the operation, mapping
// domain sentinels onto the API error taxonomy.
func computeResult(input usecase.CalculationInput) (float64, error) {
	if !input.Type.IsValid() {
		return 0, domainerrors.ErrInvalidInput.WrapMessage("unknown calculation type")
	}

	result, err := input.Type.Compute(input.A, input.B)
	if err != nil {
		if errors.Is(err, entity.ErrDivisionByZero) {
			return 0, domainerrors.ErrDivisionByZero
		}

		return 0, domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	return result, nil
}
