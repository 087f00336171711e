package entity

import "errors"

// Domain outcomes of account operations. They are expected results, not
// failures of the system, and are compared with errors.Is.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInvalidRole   = errors.New("invalid role")
)
