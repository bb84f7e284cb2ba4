//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package schedulers

type fileLock struct {
	path string
}

// NewFileLock returns a lock that never succeeds, so the scheduler declines to run.
func NewFileLock(path string) FileLock {
	return &fileLock{path: path}
}

func (l *fileLock) Path() string {
	return l.path
}

func (l *fileLock) TryAcquire() error {
	return ErrLockUnsupported
}

func (l *fileLock) Release() error {
	return nil
}
