package account

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateName signals that the chosen name is already registered.
	ErrDuplicateName = errors.New("name already taken")
	// ErrNotFound indicates a missing account.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates a login failure. The same error covers
	// unknown names and wrong passwords so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid name or password")
	// ErrInvalidToken means a supplied access token does not resolve to an account.
	ErrInvalidToken = errors.New("access token not recognised")
)

// Account models the registered user persisted in storage.
//
// AccessToken is the opaque bearer credential issued once at registration and
// never rotated. PasswordHash is the salted bcrypt hash of the password; the
// plaintext is never stored.
type Account struct {
	ID           string
	Name         string
	PasswordHash string
	AccessToken  string
	CreatedAt    time.Time
}
