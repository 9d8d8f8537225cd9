package postgres

import (
	"context"

	"bookmarkd/internal/domain/entity"
	domainerrors "bookmarkd/internal/domain/errors"
	"bookmarkd/internal/domain/repository"
	"bookmarkd/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookmarkRepository implements the repository.BookmarkRepository interface using GORM.
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository is the constructor for bookmarkRepository.
func NewBookmarkRepository(db *gorm.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// ListByUserID retrieves every bookmark owned by the given user, newest first.
func (repo *bookmarkRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Bookmark, error) {
	var bookmarkMs []*model.BookmarkModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarkMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list bookmarks")
	}

	bookmarks := make([]*entity.Bookmark, 0, len(bookmarkMs))
	for _, bookmarkM := range bookmarkMs {
		bookmarks = append(bookmarks, toBookmarkDomain(bookmarkM))
	}

	return bookmarks, nil
}

// FindByID retrieves a single bookmark by primary key, regardless of owner.
func (repo *bookmarkRepository) FindByID(ctx context.Context, id int64) (*entity.Bookmark, error) {
	var bookmarkM model.BookmarkModel
	if err := repo.db.WithContext(ctx).First(&bookmarkM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookmarkNotFound
		}

		return nil, errors.Wrap(err, "failed to find bookmark by id")
	}

	return toBookmarkDomain(&bookmarkM), nil
}

// FindOwnedByID retrieves a bookmark only when it belongs to the given user.
// A bookmark owned by someone else is indistinguishable from one that does
// not exist.
func (repo *bookmarkRepository) FindOwnedByID(ctx context.Context, userID int64, id int64) (*entity.Bookmark, error) {
	var bookmarkM model.BookmarkModel
	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&bookmarkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookmarkNotFound
		}

		return nil, errors.Wrap(err, "failed to find owned bookmark")
	}

	return toBookmarkDomain(&bookmarkM), nil
}

// Create persists a new bookmark entity to the database.
func (repo *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkM := fromBookmarkDomain(bookmark)

	if err := repo.db.WithContext(ctx).Create(bookmarkM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBookmarkWriteFailed.WrapMessage("owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create bookmark")
	}

	bookmark.ID = bookmarkM.ID
	bookmark.CreatedAt = bookmarkM.CreatedAt
	bookmark.UpdatedAt = bookmarkM.UpdatedAt

	return nil
}

// Update modifies an existing bookmark entity in the database.
func (repo *bookmarkRepository) Update(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkM := fromBookmarkDomain(bookmark)

	if err := repo.db.WithContext(ctx).Save(bookmarkM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update bookmark")
	}

	bookmark.UpdatedAt = bookmarkM.UpdatedAt

	return nil
}

// Delete removes a bookmark by primary key.
func (repo *bookmarkRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.BookmarkModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete bookmark")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookmarkNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toBookmarkDomain(data *model.BookmarkModel) *entity.Bookmark {
	if data == nil {
		return nil
	}

	return &entity.Bookmark{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Link:        data.Link,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromBookmarkDomain(data *entity.Bookmark) *model.BookmarkModel {
	if data == nil {
		return nil
	}

	return &model.BookmarkModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Link:        data.Link,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
	}
}
