package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock implementation of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// NewMockTimeProvider creates a MockTimeProvider that asserts its expectations on cleanup
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Now provides a mock function
func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Since provides a mock function
func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

// WithTimeout provides a mock function
func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	args := m.Called(ctx, timeout)
	return args.Get(0).(context.Context), args.Get(1).(context.CancelFunc)
}
