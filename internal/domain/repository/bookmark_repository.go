package repository

import (
	"context"
	"errors"

	"bookmarkd/internal/domain/entity"
)

// ErrBookmarkNotFound is returned when a bookmark does not exist.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// BookmarkRepository defines the standard operations for bookmark persistence.
type BookmarkRepository interface {
	// ListByUserID retrieves all bookmarks owned by the given user, in store order.
	ListByUserID(ctx context.Context, userID int64) ([]*entity.Bookmark, error)

	// FindByID retrieves a bookmark by primary key alone, regardless of owner.
	// The ownership comparison happens in the service layer.
	FindByID(ctx context.Context, id int64) (*entity.Bookmark, error)

	// FindOwnedByID retrieves a bookmark only when it is owned by userID.
	FindOwnedByID(ctx context.Context, userID, id int64) (*entity.Bookmark, error)

	// Create persists a new bookmark entity to the storage.
	Create(ctx context.Context, bookmark *entity.Bookmark) error

	// Update modifies an existing bookmark entity in the storage.
	Update(ctx context.Context, bookmark *entity.Bookmark) error

	// Delete removes a bookmark by primary key.
	Delete(ctx context.Context, id int64) error
}
