package browser

import (
	"errors"
	"fmt"
	"time"
)

// ErrSelectionNotConverged reports that a dropdown selection was applied but
// the selected option's text never matched the requested value within the
// wait bound. Distinct from TimeoutError so callers can tell a stuck filter
// apart from a missing element.
var ErrSelectionNotConverged = errors.New("dropdown selection did not converge")

// TimeoutError reports that a wait condition did not hold within its bound.
type TimeoutError struct {
	Locator   Locator
	Condition string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Locator.Selector == "" {
		return fmt.Sprintf("timed out after %v waiting for %s", e.Timeout, e.Condition)
	}
	return fmt.Sprintf("timed out after %v waiting for %s on %s", e.Timeout, e.Condition, e.Locator)
}

// IsTimeout reports whether err is (or wraps) a wait timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
