package http

import (
	"fmt"

	"access-summary/internal/shared/svcerrors"
)

// HTTP surface errors
const (
	codeInvalidQuery = "HTTP_1000"
)

// errInvalidQuery returns an error when a query parameter is not an integer.
func errInvalidQuery(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQuery, fmt.Sprintf("query parameter %s must be an integer", name), cause)
}
