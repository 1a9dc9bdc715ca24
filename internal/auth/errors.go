// Package auth holds credential primitives: password hashing and the signed
// tokens used for password resets.
package auth

import "errors"

// ErrInvalidSigningMethod is returned while parsing a token signed with an unexpected algorithm.
var ErrInvalidSigningMethod = errors.New("invalid signing method")
