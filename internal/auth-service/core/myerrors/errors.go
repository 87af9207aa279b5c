package myerrors

import (
	"errors"
	"fmt"
)

var (
	// One error for unknown identifier, wrong password and
	// deactivated account, so the response never reveals which
	// condition failed or whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailRegistered = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrOTPInvalid         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrOTPNotFound        = errors.New("OTP not found or expired")
)

// ValidationError marks a malformed or incomplete request payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
