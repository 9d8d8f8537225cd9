package repository

import (
	"context"
	"testing"

	"bookmarkd/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock implementation of repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a new mock and registers cleanup assertions on t.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ repository.TransactionManager = (*MockTransactionManager)(nil)

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// PassthroughTransactionManager runs the callback immediately against a fixed
// factory, without any transactional behavior. It keeps service tests focused
// on business logic instead of mock plumbing.
type PassthroughTransactionManager struct {
	Factory repository.RepositoryFactory
}

var _ repository.TransactionManager = (*PassthroughTransactionManager)(nil)

func (m *PassthroughTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// StubRepositoryFactory hands out the repositories it was built with.
type StubRepositoryFactory struct {
	UserRepository     repository.UserRepository
	BookmarkRepository repository.BookmarkRepository
}

var _ repository.RepositoryFactory = (*StubRepositoryFactory)(nil)

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository {
	return f.UserRepository
}

func (f *StubRepositoryFactory) BookmarkRepo() repository.BookmarkRepository {
	return f.BookmarkRepository
}
