package core

import "errors"

// Common errors.
var (
	ErrNotRegistered   = errors.New("module is not registered")
	ErrToolUnavailable = errors.New("tool could not be started")
	ErrUnknownPipeline = errors.New("unknown pipeline")
)
