// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookmarkd/internal/delivery/context"
	"bookmarkd/internal/domain/entity"
	domainerrors "bookmarkd/internal/domain/errors"
	"bookmarkd/internal/domain/repository"
	"bookmarkd/internal/domain/service"
	"bookmarkd/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup hashes the password and persists a new user record.
// The repository maps the email unique-constraint violation to
// ErrCredentialsTaken; every other persistence error propagates unchanged.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Email: input.Email,
		Hash:  hash,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.log(ctx).Warn("Failed to create user during signup", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.Int64("userID", newUser.ID))

	return &usecase.SignupOutput{User: newUser}, nil
}

// Signin verifies the credentials and issues an access token. An unknown
// email and a wrong password both surface ErrCredentialsIncorrect so the
// response cannot reveal which check failed.
func (srv *authService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Starting signin", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Signin failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrCredentialsIncorrect, "signin failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.Hash) {
		srv.log(ctx).Warn("Signin failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrCredentialsIncorrect, "signin failed")
	}

	accessToken, err := srv.tokenService.SignToken(user.ID, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to sign access token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to sign access token")
	}

	srv.log(ctx).Debug("User signed in successfully", slog.Int64("userID", user.ID))

	return &usecase.TokenOutput{AccessToken: accessToken}, nil
}
