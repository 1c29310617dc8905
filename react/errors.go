package react

import "errors"

var (
	ErrNilGateway    = errors.New("gateway is required")
	ErrInvalidPolicy = errors.New("invalid malformed action policy")
)
