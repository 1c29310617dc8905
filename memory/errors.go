package memory

import "errors"

// ErrExportFailed wraps any failure writing a trajectory dump.
var ErrExportFailed = errors.New("export failed")
