package domain

import "errors"

var (
	// ErrAccountNotFound indicates that no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)
