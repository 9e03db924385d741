package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidMFAToken    = errors.New("invalid MFA token")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrMFAAlreadyEnabled  = errors.New("MFA already enabled for this user")

	ErrInvalidUsername = errors.New("invalid username")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidProject  = errors.New("invalid project")
	ErrAlreadyAssigned = errors.New("user already assigned to project")
	ErrInvalidDocument = errors.New("invalid document")
)

const (
	maxUsernameLen = 64
	maxPasswordLen = 256
)

func validatePassword(p string) error {
	if p == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidPassword)
	}
	if len(p) > maxPasswordLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidPassword, maxPasswordLen)
	}
	return nil
}
