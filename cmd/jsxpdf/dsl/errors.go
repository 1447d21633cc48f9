package dsl

import "errors"

var (
	ErrComponentExists = errors.New("component already exists")
	ErrUnknownKind     = errors.New("unknown kind")
	ErrCycleDetected   = errors.New("cycle detected")
	ErrInvalidNode     = errors.New("invalid node definition")
	ErrMissingParam    = errors.New("missing required param")
	ErrUnknownParam    = errors.New("unknown param")
	ErrScript          = errors.New("script failed")
)
