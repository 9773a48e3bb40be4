package leads

import "errors"

// ErrIncompleteSubmission is returned when name, email or subject is missing.
var ErrIncompleteSubmission = errors.New("leads: name, email and subject are required")
