package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time in UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// WithTimeout returns a context canceled after timeout.
// A non-positive timeout returns a cancelable context without a deadline.
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// FixedTimeProvider returns the same instant on every call
type FixedTimeProvider struct {
	At time.Time
}

// NewFixedTimeProvider creates a time provider frozen at t
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{At: t}
}

// Now returns the frozen instant
func (p *FixedTimeProvider) Now() time.Time {
	return p.At
}

// Since returns the duration between t and the frozen instant
func (p *FixedTimeProvider) Since(t time.Time) time.Duration {
	return p.At.Sub(t)
}

// WithTimeout delegates to the standard library; deadlines use the real clock
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
