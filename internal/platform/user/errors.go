package user

import "errors"

// Account errors
var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidPassword   = errors.New("invalid email or password")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email is already in use")
)
