package model

import "errors"

// Domain error taxonomy. Call sites wrap these with a concrete message,
// so callers should match with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
)
