package service

import "errors"

// Validation failures shared by several services. Infrastructure failures are
// wrapped with fmt.Errorf and never match these.
var (
	ErrIncompleteData = errors.New("incomplete data")
	ErrInvalidEmail   = errors.New("invalid email")
)
