package usecase

import (
	"context"

	"bookmarkd/internal/domain/entity"
)

// CreateBookmarkInput defines the data required to create a bookmark.
type CreateBookmarkInput struct {
	Title       string `json:"title" validate:"required"`
	Link        string `json:"link" validate:"required"`
	Description string `json:"description"`
}

// EditBookmarkInput carries a partial update. Nil fields were absent from
// the request and must keep their stored value; only non-nil fields are
// written.
type EditBookmarkInput struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

// BookmarkUsecase defines the bookmark operations, all scoped to the
// authenticated caller's user ID.
type BookmarkUsecase interface {
	// GetBookmarks returns every bookmark owned by userID.
	GetBookmarks(ctx context.Context, userID int64) ([]*entity.Bookmark, error)

	// GetBookmarkByID returns the bookmark only when it exists and is
	// owned by userID; otherwise it returns (nil, nil). Absence and
	// non-ownership are indistinguishable to the caller.
	GetBookmarkByID(ctx context.Context, userID, bookmarkID int64) (*entity.Bookmark, error)

	// CreateBookmark inserts a new bookmark owned by userID and returns
	// it with the generated ID.
	CreateBookmark(ctx context.Context, userID int64, input *CreateBookmarkInput) (*entity.Bookmark, error)

	// EditBookmarkByID applies the non-nil fields of input. A missing or
	// non-owned bookmark fails with domainerrors.ErrBookmarkAccessDenied.
	EditBookmarkByID(ctx context.Context, userID, bookmarkID int64, input *EditBookmarkInput) (*entity.Bookmark, error)

	// DeleteBookmarkByID removes the bookmark under the same ownership
	// rule as EditBookmarkByID.
	DeleteBookmarkByID(ctx context.Context, userID, bookmarkID int64) error
}
