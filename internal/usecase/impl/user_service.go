package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookmarkd/internal/delivery/context"
	"bookmarkd/internal/domain/entity"
	domainerrors "bookmarkd/internal/domain/errors"
	"bookmarkd/internal/domain/repository"
	"bookmarkd/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetMe returns the caller's own user record.
func (srv *userService) GetMe(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "authenticated user no longer exists")
		}

		srv.log(ctx).Error("Failed to load user", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// EditUser applies the non-nil fields of input to the caller's record.
// Load and save share one transaction so concurrent edits cannot
// interleave between the read and the write.
func (srv *userService) EditUser(ctx context.Context, userID int64, input *usecase.EditUserInput) (*entity.User, error) {
	var edited *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "authenticated user no longer exists")
			}

			return errors.Wrap(err, "failed to load user")
		}

		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		edited = user

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to edit user", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user edit transaction")
	}

	srv.log(ctx).Debug("User profile updated", slog.Int64("userID", userID))

	return edited, nil
}
