package account

import "context"

// Repository defines persistence operations for accounts.
//
// Uniqueness of both Name and AccessToken is enforced by the implementation,
// not by callers: Create must be atomic with respect to the uniqueness check
// so that two concurrent registrations for one name cannot both succeed.
type Repository interface {
	Create(ctx context.Context, acct *Account) error
	GetByName(ctx context.Context, name string) (*Account, error)
	GetByToken(ctx context.Context, token string) (*Account, error)
}
