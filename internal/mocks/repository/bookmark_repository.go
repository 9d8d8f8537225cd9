package repository

import (
	"context"
	"testing"

	"bookmarkd/internal/domain/entity"
	"bookmarkd/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockBookmarkRepository is a mock implementation of repository.BookmarkRepository.
type MockBookmarkRepository struct {
	mock.Mock
}

// NewMockBookmarkRepository creates a new mock and registers cleanup assertions on t.
func NewMockBookmarkRepository(t *testing.T) *MockBookmarkRepository {
	m := &MockBookmarkRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ repository.BookmarkRepository = (*MockBookmarkRepository)(nil)

func (m *MockBookmarkRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Bookmark, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) FindByID(ctx context.Context, id int64) (*entity.Bookmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) FindOwnedByID(ctx context.Context, userID int64, id int64) (*entity.Bookmark, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	args := m.Called(ctx, bookmark)

	return args.Error(0)
}

func (m *MockBookmarkRepository) Update(ctx context.Context, bookmark *entity.Bookmark) error {
	args := m.Called(ctx, bookmark)

	return args.Error(0)
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
