// Package common contains shared constants and sentinel errors used across
// GophChat components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Directory (auth) errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Persistence errors. The key-value medium rejected a read or write
	// (e.g. quota exceeded or an unwritable storage directory).
	ErrStorageFailure = errors.New("storage failure")

	// Crypto errors: malformed ciphertext, or ciphertext produced under
	// a different key.
	ErrDecryptionFailure = errors.New("decryption failure")
)
