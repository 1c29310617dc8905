package reflection

import "errors"

var ErrNilGateway = errors.New("gateway is required")
