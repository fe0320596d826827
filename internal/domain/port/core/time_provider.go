package core

import (
	"context"
	"time"
)

// TimeProvider abstracts the clock so migration history timestamps and
// elapsed-time measurements are deterministic in tests.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
