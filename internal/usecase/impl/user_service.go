// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register orchestrates the complete account registration process.
// The password is hashed before the transaction starts so that the bcrypt
// work does not hold a database connection open.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Starting registration", slog.String("username", input.Username))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to hash password")
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Pre-checks give deterministic conflict messages; the unique indexes
		// remain the authority when two registrations race.
		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			return domainerrors.ErrUsernameTaken.WrapMessage("username already exists")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username availability")
		}

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("email already exists")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := srv.tokenService.Issue(newUser)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue access token")
	}

	srv.logger.Info("Registration completed", slog.String("userID", newUser.ID.String()))

	return &usecase.AuthOutput{User: newUser, AccessToken: accessToken}, nil
}

// Login verifies the credentials and issues a fresh access token.
// An unknown username and a wrong password return the same error, so the
// response never reveals which usernames exist.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.Issue(user)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue access token")
	}

	srv.logger.Info("Login succeeded", slog.String("userID", user.ID.String()))

	return &usecase.AuthOutput{User: user, AccessToken: accessToken}, nil
}

// DeleteAccount removes the user and every calculation they own in a single
// transaction, so a crash cannot leave orphaned calculations behind.
func (srv *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CalculationRepo().DeleteByOwner(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete owned calculations")
		}

		return repoFactory.UserRepo().Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	}

	srv.logger.Info("Account deleted", slog.String("userID", userID.String()))

	return nil
}
