package schedulers

import "errors"

var (
	ErrLockHeld        = errors.New("lock held by another process")
	ErrLockUnsupported = errors.New("file locking is not supported on this platform")
)

// FileLock is an advisory, process-wide exclusive lock on a file. The lock is released
// by Release or when the process exits.
//
//go:generate mockgen -source=file_lock.go -destination=./mocks/file_lock_mock.go -package=mocks
type FileLock interface {
	// TryAcquire takes the lock without blocking. It returns ErrLockHeld when another
	// open file description holds it. Calling it again after success is a no-op.
	TryAcquire() error
	Release() error
	Path() string
}
