package impl

import (
	"context"
	"testing"
	"time"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type calculationServiceFixtures struct {
	service  usecase.CalculationUsecase
	calcRepo *mockCalculationRepository
}

func createTestCalculationService(t *testing.T) calculationServiceFixtures {
	t.Helper()

	calcRepo := new(mockCalculationRepository)
	txManager := &fakeTxManager{factory: &fakeRepoFactory{calcs: calcRepo}}

	service := NewCalculationService(CalculationServiceParams{
		TxManager: txManager,
		CalcRepo:  calcRepo,
		Logger:    testLogger(),
	})

	return calculationServiceFixtures{service: service, calcRepo: calcRepo}
}

func TestCalculationService_Create_Success(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()

	fixtures.calcRepo.On("Create", ctx, mock.AnythingOfType("*entity.Calculation")).
		Run(func(args mock.Arguments) {
			calc := args.Get(1).(*entity.Calculation)
			calc.ID = uuid.New()
		}).
		Return(nil)

	calc, err := fixtures.service.Create(ctx, ownerID, usecase.CalculationInput{
		A:    6,
		B:    7,
		Type: entity.CalculationTypeMultiply,
	})

	require.NoError(t, err)
	assert.InDelta(t, 42.0, calc.Result, 1e-9)
	assert.Equal(t, ownerID, calc.OwnerID)
	assert.NotEqual(t, uuid.Nil, calc.ID)
}

func TestCalculationService_Create_DivisionByZero(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()

	calc, err := fixtures.service.Create(ctx, uuid.New(), usecase.CalculationInput{
		A:    10,
		B:    0,
		Type: entity.CalculationTypeDivide,
	})

	require.Error(t, err)
	assert.Nil(t, calc)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DIVISION_BY_ZERO", appErr.ErrorCode())

	// Nothing may reach the database on a rejected calculation.
	fixtures.calcRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCalculationService_Create_UnknownType(t *testing.T) {
	fixtures := createTestCalculationService(t)

	calc, err := fixtures.service.Create(context.Background(), uuid.New(), usecase.CalculationInput{
		A:    1,
		B:    2,
		Type: entity.CalculationType("Modulo"),
	})

	require.Error(t, err)
	assert.Nil(t, calc)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_INPUT", appErr.ErrorCode())
}

func TestCalculationService_List_ClampsPagination(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()

	fixtures.calcRepo.On("FindByOwner", ctx, ownerID, 0, defaultListLimit).
		Return([]*entity.Calculation{}, nil)

	calcs, err := fixtures.service.List(ctx, ownerID, usecase.ListCalculationsInput{Skip: -5, Limit: 0})

	require.NoError(t, err)
	assert.Empty(t, calcs)
	fixtures.calcRepo.AssertExpectations(t)
}

func TestCalculationService_Get_NotFound(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	calcID := uuid.New()

	fixtures.calcRepo.On("FindByID", ctx, ownerID, calcID).
		Return(nil, repository.ErrCalculationNotFound)

	calc, err := fixtures.service.Get(ctx, ownerID, calcID)

	require.Error(t, err)
	assert.Nil(t, calc)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CALCULATION_NOT_FOUND", appErr.ErrorCode())
}

func TestCalculationService_Update_RecomputesResult(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	calcID := uuid.New()

	stored := &entity.Calculation{
		ID:      calcID,
		OwnerID: ownerID,
		A:       1,
		B:       1,
		Type:    entity.CalculationTypeAdd,
		Result:  2,
	}

	fixtures.calcRepo.On("FindByID", ctx, ownerID, calcID).Return(stored, nil)
	fixtures.calcRepo.On("Update", ctx, mock.AnythingOfType("*entity.Calculation")).Return(nil)

	updated, err := fixtures.service.Update(ctx, ownerID, calcID, usecase.CalculationInput{
		A:    9,
		B:    3,
		Type: entity.CalculationTypeDivide,
	})

	require.NoError(t, err)
	assert.InDelta(t, 3.0, updated.Result, 1e-9)
	assert.Equal(t, entity.CalculationTypeDivide, updated.Type)
}

func TestCalculationService_Update_ReturnsStoredTimestamps(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	calcID := uuid.New()

	before := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	after := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	stored := &entity.Calculation{
		ID:        calcID,
		OwnerID:   ownerID,
		A:         1,
		B:         1,
		Type:      entity.CalculationTypeAdd,
		Result:    2,
		UpdatedAt: before,
	}
	persisted := &entity.Calculation{
		ID:        calcID,
		OwnerID:   ownerID,
		A:         2,
		B:         2,
		Type:      entity.CalculationTypeAdd,
		Result:    4,
		UpdatedAt: after,
	}

	fixtures.calcRepo.On("FindByID", ctx, ownerID, calcID).Return(stored, nil).Once()
	fixtures.calcRepo.On("Update", ctx, mock.AnythingOfType("*entity.Calculation")).Return(nil)
	fixtures.calcRepo.On("FindByID", ctx, ownerID, calcID).Return(persisted, nil).Once()

	updated, err := fixtures.service.Update(ctx, ownerID, calcID, usecase.CalculationInput{
		A:    2,
		B:    2,
		Type: entity.CalculationTypeAdd,
	})

	require.NoError(t, err)
	// The response must carry the timestamp written by the store, not the one
	// read before the update.
	assert.Equal(t, after, updated.UpdatedAt)
	fixtures.calcRepo.AssertExpectations(t)
}

func TestCalculationService_Update_DivisionByZeroLeavesRowUntouched(t *testing.T) {
	fixtures := createTestCalculationService(t)

	updated, err := fixtures.service.Update(context.Background(), uuid.New(), uuid.New(), usecase.CalculationInput{
		A:    9,
		B:    0,
		Type: entity.CalculationTypeDivide,
	})

	require.Error(t, err)
	assert.Nil(t, updated)
	fixtures.calcRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	fixtures.calcRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCalculationService_Update_NotOwned(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	calcID := uuid.New()

	fixtures.calcRepo.On("FindByID", ctx, ownerID, calcID).
		Return(nil, repository.ErrCalculationNotFound)

	updated, err := fixtures.service.Update(ctx, ownerID, calcID, usecase.CalculationInput{
		A:    1,
		B:    2,
		Type: entity.CalculationTypeAdd,
	})

	require.Error(t, err)
	assert.Nil(t, updated)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CALCULATION_NOT_FOUND", appErr.ErrorCode())
}

func TestCalculationService_Delete_Success(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	calcID := uuid.New()

	fixtures.calcRepo.On("Delete", ctx, ownerID, calcID).Return(nil)

	err := fixtures.service.Delete(ctx, ownerID, calcID)

	require.NoError(t, err)
	fixtures.calcRepo.AssertExpectations(t)
}

func TestCalculationService_Delete_NotFound(t *testing.T) {
	fixtures := createTestCalculationService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	calcID := uuid.New()

	fixtures.calcRepo.On("Delete", ctx, ownerID, calcID).Return(repository.ErrCalculationNotFound)

	err := fixtures.service.Delete(ctx, ownerID, calcID)

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CALCULATION_NOT_FOUND", appErr.ErrorCode())
}
