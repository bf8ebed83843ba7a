// Package users implements the account directory: the registered user list,
// the email→password credential table, and the current-session pointer.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/models"
)

// Repository describes directory operations over the persisted user data.
//
// Contract:
//   - Register fails with common.ErrDuplicateEmail when the email is taken
//     (case-sensitive exact match) and must not mutate the existing user.
//   - Login fails with common.ErrUserNotFound for an unknown email and with
//     common.ErrInvalidCredentials when the stored password differs.
//   - Logout clears the session pointer only; the online flag is left as-is.
//   - CurrentUser returns nil without error when no session exists.
type Repository interface {
	// List returns every registered user.
	List(ctx context.Context) ([]models.User, error)

	// Register creates a new account, records its credentials, marks it
	// online, and sets the session pointer to it.
	Register(ctx context.Context, name, email, password string) (*models.User, error)

	// Login verifies credentials, refreshes presence, and sets the session
	// pointer.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// Logout clears the session pointer.
	Logout(ctx context.Context) error

	// CurrentUser returns the user the session pointer refers to, or nil.
	CurrentUser(ctx context.Context) (*models.User, error)

	// UpdatePresence overwrites the user's online/lastSeen fields in both
	// the user list and the session pointer, returning the updated record.
	UpdatePresence(ctx context.Context, user *models.User, online bool) (*models.User, error)
}
