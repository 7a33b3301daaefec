// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to the right HTTP status without inspecting driver-specific
// error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced account or provider does not
// exist (or exists but does not have the provider role where one is
// required). Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by account creation when the normalized email
// is already registered. Emails are stored lowercase, so the uniqueness
// check is case-insensitive by construction. Handlers should translate
// this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error 1062), raised when an INSERT collides with a unique key.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
