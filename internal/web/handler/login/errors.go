// Package login provides the admin api sign in and session check.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidCredentials is returned when the provided username and/or password
	// are not valid.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTOTPRequired is returned when the account needs a second factor code.
	ErrTOTPRequired = errors.New("two factor code required")

	// ErrInvalidTOTP is returned when the second factor code is wrong.
	ErrInvalidTOTP = errors.New("invalid two factor code")

	// ErrAccountDisabled is returned for deactivated accounts.
	ErrAccountDisabled = errors.New("account is disabled")
)
