package usecase

import (
	"context"

	"bookmarkd/internal/domain/entity"
)

// EditUserInput carries a partial profile update; nil fields are left untouched.
type EditUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UserUsecase defines profile operations for the authenticated user.
type UserUsecase interface {
	// GetMe returns the caller's own user record.
	GetMe(ctx context.Context, userID int64) (*entity.User, error)

	// EditUser applies the non-nil fields of input to the caller's record
	// and returns the updated user. Email uniqueness is still enforced.
	EditUser(ctx context.Context, userID int64, input *EditUserInput) (*entity.User, error)
}
