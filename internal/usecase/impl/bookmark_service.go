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

// bookmarkService implements the BookmarkUsecase interface.
type bookmarkService struct {
	txManager    repository.TransactionManager
	bookmarkRepo repository.BookmarkRepository
	logger       *slog.Logger
}

// NewBookmarkService is the constructor for bookmarkService.
func NewBookmarkService(
	txManager repository.TransactionManager,
	bookmarkRepo repository.BookmarkRepository,
	logger *slog.Logger,
) usecase.BookmarkUsecase {
	return &bookmarkService{
		txManager:    txManager,
		bookmarkRepo: bookmarkRepo,
		logger:       logger,
	}
}

func (srv *bookmarkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetBookmarks returns every bookmark owned by userID.
func (srv *bookmarkService) GetBookmarks(ctx context.Context, userID int64) ([]*entity.Bookmark, error) {
	bookmarks, err := srv.bookmarkRepo.ListByUserID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list bookmarks", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	return bookmarks, nil
}

// GetBookmarkByID returns the bookmark only when it is owned by userID.
// Absence and non-ownership both yield (nil, nil): reads hide the
// existence of other users' bookmarks, unlike the write path which
// answers with an explicit forbidden error.
func (srv *bookmarkService) GetBookmarkByID(ctx context.Context, userID, bookmarkID int64) (*entity.Bookmark, error) {
	bookmark, err := srv.bookmarkRepo.FindOwnedByID(ctx, userID, bookmarkID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return nil, nil
		}

		srv.log(ctx).Error("Failed to find bookmark", slog.Int64("bookmarkID", bookmarkID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find bookmark")
	}

	return bookmark, nil
}

// CreateBookmark inserts a new bookmark owned by userID.
func (srv *bookmarkService) CreateBookmark(ctx context.Context, userID int64, input *usecase.CreateBookmarkInput) (*entity.Bookmark, error) {
	bookmark := &entity.Bookmark{
		UserID:      userID,
		Title:       input.Title,
		Link:        input.Link,
		Description: input.Description,
	}

	if err := srv.bookmarkRepo.Create(ctx, bookmark); err != nil {
		srv.log(ctx).Error("Failed to create bookmark", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create bookmark")
	}

	srv.log(ctx).Debug("Bookmark created", slog.Int64("bookmarkID", bookmark.ID), slog.Int64("userID", userID))

	return bookmark, nil
}

// EditBookmarkByID loads the bookmark by primary key, compares the owner in
// application code, then writes only the fields present in the request. The
// fetch and the write share one transaction so the owner cannot change
// between the check and the update.
func (srv *bookmarkService) EditBookmarkByID(ctx context.Context, userID, bookmarkID int64, input *usecase.EditBookmarkInput) (*entity.Bookmark, error) {
	var edited *entity.Bookmark

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookmarkRepo := repoFactory.BookmarkRepo()

		bookmark, err := srv.loadOwnedBookmark(ctx, bookmarkRepo, userID, bookmarkID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			bookmark.Title = *input.Title
		}
		if input.Link != nil {
			bookmark.Link = *input.Link
		}
		if input.Description != nil {
			bookmark.Description = *input.Description
		}

		if err := bookmarkRepo.Update(ctx, bookmark); err != nil {
			return errors.Wrap(err, "failed to update bookmark")
		}

		edited = bookmark

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to edit bookmark", slog.Int64("bookmarkID", bookmarkID), slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute bookmark edit transaction")
	}

	return edited, nil
}

// DeleteBookmarkByID removes the bookmark under the same fetch-then-compare
// ownership rule as EditBookmarkByID.
func (srv *bookmarkService) DeleteBookmarkByID(ctx context.Context, userID, bookmarkID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookmarkRepo := repoFactory.BookmarkRepo()

		bookmark, err := srv.loadOwnedBookmark(ctx, bookmarkRepo, userID, bookmarkID)
		if err != nil {
			return err
		}

		if err := bookmarkRepo.Delete(ctx, bookmark.ID); err != nil {
			return errors.Wrap(err, "failed to delete bookmark")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to delete bookmark", slog.Int64("bookmarkID", bookmarkID), slog.Int64("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute bookmark delete transaction")
	}

	srv.log(ctx).Debug("Bookmark deleted", slog.Int64("bookmarkID", bookmarkID), slog.Int64("userID", userID))

	return nil
}

// loadOwnedBookmark fetches by primary key alone and compares the owner in
// application code. A scoped "where id and owner" write would silently
// no-op on mismatch; this two-step check is what lets mismatch and absence
// surface as an explicit forbidden error.
func (srv *bookmarkService) loadOwnedBookmark(ctx context.Context, bookmarkRepo repository.BookmarkRepository, userID, bookmarkID int64) (*entity.Bookmark, error) {
	bookmark, err := bookmarkRepo.FindByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBookmarkAccessDenied, "bookmark missing")
		}

		return nil, errors.Wrap(err, "failed to load bookmark")
	}

	if bookmark.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrBookmarkAccessDenied, "bookmark not owned by caller")
	}

	return bookmark, nil
}
