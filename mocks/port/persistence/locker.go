// Package persistence provides testify mocks for the persistence ports.
package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLocker is a mock implementation of persistence.Locker
type MockLocker struct {
	mock.Mock
}

// NewMockLocker creates a MockLocker that asserts its expectations on cleanup
func NewMockLocker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocker {
	m := &MockLocker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Acquire provides a mock function
func (m *MockLocker) Acquire(ctx context.Context) (func() error, error) {
	args := m.Called(ctx)
	release, _ := args.Get(0).(func() error)
	return release, args.Error(1)
}
