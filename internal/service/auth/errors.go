package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, its signature doesn't
	// match, or it is no longer valid.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired. It matches ErrInvalidToken.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrMalformedHeader indicates the Authorization header is absent or does
	// not use the Bearer scheme.
	ErrMalformedHeader = errors.New("authorization header must use the Bearer scheme")

	// ErrInvalidCredentials is returned by login for an unknown email or a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates a valid token whose subject no longer exists.
	ErrUserNotFound = errors.New("token subject no longer exists")
)
