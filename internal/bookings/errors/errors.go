package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrDuplicateID = errors.New("booking id already exists")

	ErrIDExhausted = errors.New("could not allocate a unique booking id")
)
