// Package core provides testify mocks for the core ports.
package core

import (
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of core.Logger
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a MockLogger that asserts its expectations on cleanup
func NewMockLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewPermissiveLogger creates a MockLogger that accepts any log call
func NewPermissiveLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := NewMockLogger(t)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(method, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

// SetLevel provides a mock function
func (m *MockLogger) SetLevel(level core.LogLevel) {
	m.Called(level)
}

// GetLevel provides a mock function
func (m *MockLogger) GetLevel() core.LogLevel {
	args := m.Called()
	return args.Get(0).(core.LogLevel)
}

// Debug provides a mock function
func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Info provides a mock function
func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Warn provides a mock function
func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Error provides a mock function
func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Flush provides a mock function
func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
