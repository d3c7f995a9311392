package timeout

import (
	"fmt"
	"time"
)

// TimeoutError reports that an operation exceeded its deadline and no
// fallback was available at the call site.
type TimeoutError struct {
	Label   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Label, e.Timeout)
}
