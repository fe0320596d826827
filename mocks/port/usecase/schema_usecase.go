// Package usecase provides testify mocks for the usecase ports.
package usecase

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSchemaUseCase is a mock implementation of usecase.SchemaUseCase
type MockSchemaUseCase struct {
	mock.Mock
}

// NewMockSchemaUseCase creates a MockSchemaUseCase that asserts its expectations on cleanup
func NewMockSchemaUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSchemaUseCase {
	m := &MockSchemaUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EnsureSchema provides a mock function
func (m *MockSchemaUseCase) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// RunMigrations provides a mock function
func (m *MockSchemaUseCase) RunMigrations(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Bootstrap provides a mock function
func (m *MockSchemaUseCase) Bootstrap(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Pending provides a mock function
func (m *MockSchemaUseCase) Pending(ctx context.Context) ([]entity.MigrationSummary, error) {
	args := m.Called(ctx)
	pending, _ := args.Get(0).([]entity.MigrationSummary)
	return pending, args.Error(1)
}

// Status provides a mock function
func (m *MockSchemaUseCase) Status(ctx context.Context) (*entity.SchemaStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(*entity.SchemaStatus)
	return status, args.Error(1)
}
