package persistence

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockMigrationRepository is a mock implementation of persistence.MigrationRepository
type MockMigrationRepository struct {
	mock.Mock
}

// NewMockMigrationRepository creates a MockMigrationRepository that asserts its expectations on cleanup
func NewMockMigrationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMigrationRepository {
	m := &MockMigrationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Enabled provides a mock function
func (m *MockMigrationRepository) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// EnsureTable provides a mock function
func (m *MockMigrationRepository) EnsureTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ListApplied provides a mock function
func (m *MockMigrationRepository) ListApplied(ctx context.Context) ([]entity.AppliedMigration, error) {
	args := m.Called(ctx)
	applied, _ := args.Get(0).([]entity.AppliedMigration)
	return applied, args.Error(1)
}

// IsApplied provides a mock function
func (m *MockMigrationRepository) IsApplied(ctx context.Context, version int64) (bool, error) {
	args := m.Called(ctx, version)
	return args.Bool(0), args.Error(1)
}

// Record provides a mock function
func (m *MockMigrationRepository) Record(ctx context.Context, applied entity.AppliedMigration) error {
	args := m.Called(ctx, applied)
	return args.Error(0)
}
