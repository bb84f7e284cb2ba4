package schedulers

import (
	"fmt"

	"access-summary/internal/shared/svcerrors"
)

// Scheduler errors
const (
	codeInternalLockFailed      = "SCH_9000"
	codeInternalIterationFailed = "SCH_9001"
)

// errInternalLockFailed returns an error when the lock file cannot be opened or locked
// for a reason other than another owner.
func errInternalLockFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLockFailed, fmt.Errorf("lockFailed(%s): %w", path, cause))
}

// errInternalIterationFailed returns an error when checking or generating the target day fails.
func errInternalIterationFailed(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalIterationFailed, fmt.Errorf("iterationFailed(%s): %w", date, cause))
}
