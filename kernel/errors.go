package kernel

import "errors"

// ErrUnknownObserver is returned by New when Config.Observer names no
// registered observer.
var ErrUnknownObserver = errors.New("unknown observer")
