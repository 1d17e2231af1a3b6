package agent

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// RunError is returned when a run terminates for any reason other than
// a completed final response. Reason matches the terminal phase.
type RunError struct {
	Reason TerminationReason
	Err    error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run terminated: %s: %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("run terminated: %s", e.Reason)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the termination reason from an error, or empty
// when the error is not a RunError.
func ReasonOf(err error) TerminationReason {
	if err == nil {
		return ""
	}
	var re *RunError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}
