// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bookmarkd/internal/domain/entity"
)

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninInput defines the data required to authenticate.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupOutput returns the newly created user. The password hash is never
// serialized (entity.User strips it).
type SignupOutput struct {
	User *entity.User `json:"user"`
}

// TokenOutput returns the issued access token after a successful signin.
type TokenOutput struct {
	AccessToken string `json:"access_token"`
}

// AuthUsecase defines the contract the HTTP layer depends on for
// signup and signin.
type AuthUsecase interface {
	// Signup hashes the password and persists a new user. A duplicate
	// email fails with domainerrors.ErrCredentialsTaken; any other
	// persistence error propagates unchanged.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Signin verifies the credentials and issues an access token. Unknown
	// email and wrong password both fail with the identical
	// domainerrors.ErrCredentialsIncorrect.
	Signin(ctx context.Context, input *SigninInput) (*TokenOutput, error)
}
