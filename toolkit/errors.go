package toolkit

import "errors"

var (
	ErrUnknownTool       = errors.New("unknown built-in tool")
	ErrEmptyInput        = errors.New("input is required")
	ErrMissingSearchKey  = errors.New("SERPAPI_API_KEY is not configured")
	ErrOutsideRoot       = errors.New("path escapes the configured root")
	ErrInvalidExpression = errors.New("invalid expression")
)
