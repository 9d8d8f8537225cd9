package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookmarkd/internal/delivery/http/middleware"
	"bookmarkd/internal/delivery/http/response"
	domainerrors "bookmarkd/internal/domain/errors"
	"bookmarkd/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookmarkHandler holds dependencies for bookmark handlers.
type BookmarkHandler struct {
	uc     usecase.BookmarkUsecase
	logger *slog.Logger
}

// NewBookmarkHandler is the constructor for BookmarkHandler, injected by Fx.
func NewBookmarkHandler(uc usecase.BookmarkUsecase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetBookmarks lists every bookmark owned by the caller.
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "Missing authenticated user")
	}

	bookmarks, err := h.uc.GetBookmarks(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, bookmarks)
}

// GetBookmarkByID returns a single bookmark owned by the caller. A bookmark
// that does not exist or belongs to someone else yields a null body, not an
// error.
func (h *BookmarkHandler) GetBookmarkByID(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "Missing authenticated user")
	}

	bookmarkID, err := parseBookmarkID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	bookmark, err := h.uc.GetBookmarkByID(c.Request().Context(), userID, bookmarkID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, bookmark)
}

// CreateBookmark inserts a new bookmark owned by the caller.
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "Missing authenticated user")
	}

	var input *usecase.CreateBookmarkInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("Invalid bookmark input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	bookmark, err := h.uc.CreateBookmark(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, bookmark)
}

// EditBookmarkByID applies a partial update to a bookmark owned by the caller.
func (h *BookmarkHandler) EditBookmarkByID(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "Missing authenticated user")
	}

	bookmarkID, err := parseBookmarkID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input *usecase.EditBookmarkInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("Invalid bookmark input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	bookmark, err := h.uc.EditBookmarkByID(c.Request().Context(), userID, bookmarkID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, bookmark)
}

// DeleteBookmarkByID removes a bookmark owned by the caller.
func (h *BookmarkHandler) DeleteBookmarkByID(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "Missing authenticated user")
	}

	bookmarkID, err := parseBookmarkID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteBookmarkByID(c.Request().Context(), userID, bookmarkID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseBookmarkID(c echo.Context) (int64, error) {
	bookmarkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("id must be a number")
	}

	return bookmarkID, nil
}
