package persistence

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a MockUnitOfWork that asserts its expectations on cleanup
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Begin provides a mock function
func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	txCtx, _ := args.Get(0).(context.Context)
	return txCtx, args.Error(1)
}

// Commit provides a mock function
func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback provides a mock function
func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetSchemaRepository provides a mock function
func (m *MockUnitOfWork) GetSchemaRepository(ctx context.Context) persistence.SchemaRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.SchemaRepository)
}

// GetMigrationRepository provides a mock function
func (m *MockUnitOfWork) GetMigrationRepository(ctx context.Context) persistence.MigrationRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.MigrationRepository)
}
