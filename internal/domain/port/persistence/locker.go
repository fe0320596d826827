package persistence

import "context"

// Locker serialises schema migration across processes sharing a database
type Locker interface {
	// Acquire blocks until the exclusive migration lock is held or ctx is done.
	// The returned function releases the lock.
	//
	// Possible errors:
	// - ErrLockTimeout: If the lock could not be obtained before ctx expired
	Acquire(ctx context.Context) (release func() error, err error)
}
