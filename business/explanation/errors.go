package explanation

import "errors"

// ErrExhaustedRetries means every attempt in the retry loop failed to
// execute (as opposed to producing text that merely failed validation).
// The batch enhancer converts this into an emergency explanation; it never
// reaches the caller.
var ErrExhaustedRetries = errors.New("all generation attempts failed to execute")
