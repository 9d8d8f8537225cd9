package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"bookmarkd/internal/domain/entity"
	domainerrors "bookmarkd/internal/domain/errors"
	"bookmarkd/internal/domain/repository"
	mockRepo "bookmarkd/internal/mocks/repository"
	mockSvc "bookmarkd/internal/mocks/service"
	"bookmarkd/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(userRepo, hasher, tokenService, logger)

	return authServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Email:    "vlad@gmail.com",
		Password: "123",
	}

	fx.hasher.On("Hash", "123").Return("$argon2id$fakehash", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = 1
		}).
		Return(nil)

	output, err := fx.service.Signup(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, int64(1), output.User.ID)
	assert.Equal(t, "vlad@gmail.com", output.User.Email)
	assert.Equal(t, "$argon2id$fakehash", output.User.Hash)
}

func TestAuthService_Signup_HashIsNeverSerialized(t *testing.T) {
	user := &entity.User{
		ID:    1,
		Email: "vlad@gmail.com",
		Hash:  "$argon2id$fakehash",
	}

	body, err := json.Marshal(usecase.SignupOutput{User: user})

	require.NoError(t, err)
	assert.NotContains(t, string(body), "fakehash")
	assert.NotContains(t, string(body), "hash")
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Email:    "vlad@gmail.com",
		Password: "123",
	}

	fx.hasher.On("Hash", "123").Return("$argon2id$fakehash", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrCredentialsTaken)

	output, err := fx.service.Signup(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode())
	assert.Equal(t, "Credentials has taken", appErr.Message())
}

func TestAuthService_Signin_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SigninInput{
		Email:    "vlad@gmail.com",
		Password: "123",
	}

	fx.userRepo.On("FindByEmail", ctx, "vlad@gmail.com").
		Return(&entity.User{ID: 7, Email: "vlad@gmail.com", Hash: "$argon2id$fakehash"}, nil)
	fx.hasher.On("Check", "123", "$argon2id$fakehash").Return(true)
	fx.tokenService.On("SignToken", int64(7), "vlad@gmail.com").Return("signed.jwt.token", nil)

	output, err := fx.service.Signin(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.AccessToken)
}

// Unknown email and wrong password must be indistinguishable to a caller
// probing for registered accounts.
func TestAuthService_Signin_UnknownEmailAndWrongPasswordMatch(t *testing.T) {
	ctx := context.Background()

	unknownFx := createTestAuthService(t)
	unknownFx.userRepo.On("FindByEmail", ctx, "nobody@gmail.com").
		Return(nil, repository.ErrUserNotFound)

	_, unknownErr := unknownFx.service.Signin(ctx, &usecase.SigninInput{
		Email:    "nobody@gmail.com",
		Password: "123",
	})

	wrongFx := createTestAuthService(t)
	wrongFx.userRepo.On("FindByEmail", ctx, "vlad@gmail.com").
		Return(&entity.User{ID: 7, Email: "vlad@gmail.com", Hash: "$argon2id$fakehash"}, nil)
	wrongFx.hasher.On("Check", "wrong", "$argon2id$fakehash").Return(false)

	_, wrongErr := wrongFx.service.Signin(ctx, &usecase.SigninInput{
		Email:    "vlad@gmail.com",
		Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	var unknownAppErr, wrongAppErr domainerrors.AppError
	require.True(t, errors.As(unknownErr, &unknownAppErr))
	require.True(t, errors.As(wrongErr, &wrongAppErr))
	assert.Equal(t, unknownAppErr.HTTPCode(), wrongAppErr.HTTPCode())
	assert.Equal(t, unknownAppErr.Message(), wrongAppErr.Message())
	assert.Equal(t, "Credentials incorrect", wrongAppErr.Message())
}

func TestAuthService_Signin_TokenSigningFailure(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "vlad@gmail.com").
		Return(&entity.User{ID: 7, Email: "vlad@gmail.com", Hash: "$argon2id$fakehash"}, nil)
	fx.hasher.On("Check", "123", "$argon2id$fakehash").Return(true)
	fx.tokenService.On("SignToken", int64(7), "vlad@gmail.com").
		Return("", errors.New("signing key unavailable"))

	output, err := fx.service.Signin(ctx, &usecase.SigninInput{
		Email:    "vlad@gmail.com",
		Password: "123",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.NotContains(t, err.Error(), "Credentials incorrect")
}
