package postgres

import (
	"context"
	"errors"

	domain "authapi/backend/internal/domain/account"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository persists accounts in PostgreSQL. The unique indexes on
// name and access_token make the database the single arbiter of uniqueness,
// so the check and the insert cannot race.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository constructs a repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Ensure AccountRepository implements the domain Repository interface.
var _ domain.Repository = (*AccountRepository)(nil)

// Create inserts a new account record.
func (r *AccountRepository) Create(ctx context.Context, acct *domain.Account) error {
	const query = `
INSERT INTO accounts (id, name, password_hash, access_token, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.pool.Exec(ctx, query,
		acct.ID,
		acct.Name,
		acct.PasswordHash,
		acct.AccessToken,
		acct.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts_name_key") {
			return domain.ErrDuplicateName
		}
		return err
	}
	return nil
}

// GetByName fetches an account by its unique name.
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	const query = `
SELECT id, name, password_hash, access_token, created_at
FROM accounts WHERE name = $1
`
	return r.getOne(ctx, query, name)
}

// GetByToken fetches an account by its unique access token.
func (r *AccountRepository) GetByToken(ctx context.Context, token string) (*domain.Account, error) {
	const query = `
SELECT id, name, password_hash, access_token, created_at
FROM accounts WHERE access_token = $1
`
	return r.getOne(ctx, query, token)
}

func (r *AccountRepository) getOne(ctx context.Context, query, arg string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.PasswordHash,
		&a.AccessToken,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
