package summaries

import (
	"fmt"

	"access-summary/internal/shared/svcerrors"
)

// SummaryService errors
const (
	codeInvalidArgument = "SUM_1000"
	codeSummaryNotFound = "SUM_1001"

	codeInternalSummaryStoreFailed = "SUM_9000"
	codeInternalGenerationAborted  = "SUM_9001"
)

// errInvalidArgument returns an error for a malformed date or directory override.
func errInvalidArgument(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidArgument, msg, cause)
}

// errSummaryNotFound returns an error when no report exists for the date.
func errSummaryNotFound(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeSummaryNotFound, fmt.Sprintf("no summary for %s", date), cause)
}

// errInternalSummaryStoreFailed returns an error when reading or writing report files fails.
func errInternalSummaryStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSummaryStoreFailed, fmt.Errorf("summaryStoreFailed: %w", cause))
}

// errInternalGenerationAborted returns an error when generation stops before the report is written.
func errInternalGenerationAborted(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalGenerationAborted, fmt.Errorf("generationAborted: %w", cause))
}
