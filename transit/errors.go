package transit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrResponseFormat reports that the API answered 200 but the body did not
// have the shape this package expects. It usually means the upstream API
// changed.
var ErrResponseFormat = errors.New("transit: unexpected response format")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transit: %s: %s", e.URL, e.Status)
}

// OperationFailedError carries the error messages the Journey Planner
// returns in systemMessages when a trip search fails.
type OperationFailedError struct {
	Messages []string
}

func (e *OperationFailedError) Error() string {
	if len(e.Messages) == 0 {
		return "transit: operation failed"
	}
	return "transit: operation failed: " + strings.Join(e.Messages, "; ")
}
