package gateway

import "errors"

// Sentinel errors for gateway construction and invocation.
var (
	ErrMissingModel      = errors.New("model is required")
	ErrMissingAPIKey     = errors.New("api key is required")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrEmptyConversation = errors.New("conversation is empty")
)
