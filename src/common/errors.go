package common

import "errors"

// Only these two block a guest request; everything else on the booking path
// is logged and degraded.
var (
	ErrValidation = errors.New("invalid request")
	ErrNotFound   = errors.New("not found")
)
