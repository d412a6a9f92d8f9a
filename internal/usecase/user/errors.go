// Package user provides account use cases: registration, credential
// verification and profile management.
package user

import "errors"

// Sentinel errors for user use case operations.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed login. The same error is
	// returned for an unknown email and a wrong password so the two cases
	// are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNothingToUpdate indicates a profile update with no fields supplied.
	ErrNothingToUpdate = errors.New("no fields to update")
)
