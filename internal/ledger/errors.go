package ledger

import "errors"

// Transaction validation errors
var (
	ErrMissingHouseName  = errors.New("house name is required")
	ErrInvalidKind       = errors.New("invalid transaction kind")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// Profile validation errors
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrInvalidAge         = errors.New("age must be a positive integer")
	ErrInvalidAvatarIndex = errors.New("avatar index out of range")
)

// IsValidation reports whether err is a user-input validation error, as
// opposed to a persistence failure. Validation errors are surfaced before
// any write is attempted.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrMissingHouseName,
		ErrInvalidKind,
		ErrNonPositiveAmount,
		ErrEmptyName,
		ErrInvalidAge,
		ErrInvalidAvatarIndex,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
