package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"tally/internal/domain/entity"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// testLogger discards all output so test runs stay quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the callback directly against a fixed factory.
// Transactional semantics are the repository layer's concern, not the
// services', so the tests only need the callback to execute.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeRepoFactory hands out the mocks wired into it.
type fakeRepoFactory struct {
	users repository.UserRepository
	calcs repository.CalculationRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.users
}

func (f *fakeRepoFactory) CalculationRepo() repository.CalculationRepository {
	return f.calcs
}

// --- Repository mocks ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type mockCalculationRepository struct {
	mock.Mock
}

func (m *mockCalculationRepository) Create(ctx context.Context, calc *entity.Calculation) error {
	args := m.Called(ctx, calc)

	return args.Error(0)
}

func (m *mockCalculationRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*entity.Calculation, error) {
	args := m.Called(ctx, ownerID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Calculation), args.Error(1)
}

func (m *mockCalculationRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Calculation, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Calculation), args.Error(1)
}

func (m *mockCalculationRepository) Update(ctx context.Context, calc *entity.Calculation) error {
	args := m.Called(ctx, calc)

	return args.Error(0)
}

func (m *mockCalculationRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)

	return args.Error(0)
}

func (m *mockCalculationRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)

	return args.Error(0)
}

// --- Service mocks ---

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *mockTokenService) AccessTokenTTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
