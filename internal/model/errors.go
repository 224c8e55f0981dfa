package model

import "errors"

var (
	// Transaction errors
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidTransfer    = errors.New("invalid transfer")

	// Lookup errors: unknown account id, wrong passcode, unknown recipient,
	// delete of a nonexistent account
	ErrNotFound = errors.New("not found")

	// Console input that fails to parse as a number
	ErrMalformedInput = errors.New("malformed input")
)
