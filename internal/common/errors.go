package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorInvalidQuantity = errors.New("invalid quantity")
	ErrorInvalidInput    = errors.New("invalid input")
)
