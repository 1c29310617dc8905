package prompt

import "errors"

// Sentinel errors for template parsing.
var (
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrMalformedTemplate  = errors.New("malformed template")
)
