package persistence

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSchemaRepository is a mock implementation of persistence.SchemaRepository
type MockSchemaRepository struct {
	mock.Mock
}

// NewMockSchemaRepository creates a MockSchemaRepository that asserts its expectations on cleanup
func NewMockSchemaRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSchemaRepository {
	m := &MockSchemaRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// TableExists provides a mock function
func (m *MockSchemaRepository) TableExists(ctx context.Context, table string) (bool, error) {
	args := m.Called(ctx, table)
	return args.Bool(0), args.Error(1)
}

// Columns provides a mock function
func (m *MockSchemaRepository) Columns(ctx context.Context, table string) ([]entity.ColumnInfo, error) {
	args := m.Called(ctx, table)
	columns, _ := args.Get(0).([]entity.ColumnInfo)
	return columns, args.Error(1)
}

// HasColumn provides a mock function
func (m *MockSchemaRepository) HasColumn(ctx context.Context, table, column string) (bool, error) {
	args := m.Called(ctx, table, column)
	return args.Bool(0), args.Error(1)
}

// CreateTable provides a mock function
func (m *MockSchemaRepository) CreateTable(ctx context.Context, table entity.TableSchema) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

// AddColumn provides a mock function
func (m *MockSchemaRepository) AddColumn(ctx context.Context, table string, column entity.ColumnDef) error {
	args := m.Called(ctx, table, column)
	return args.Error(0)
}
