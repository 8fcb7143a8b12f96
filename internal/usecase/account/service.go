package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "authapi/backend/internal/domain/account"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrInvalidInput indicates the supplied name or password failed validation.
	ErrInvalidInput = errors.New("name and password must each be at least 5 characters")
	// ErrRegistrationFailed is the generic registration failure surfaced to
	// callers. It deliberately does not distinguish a name collision from
	// other causes.
	ErrRegistrationFailed = errors.New("could not create user")
)

// Service coordinates registration, login, and token authentication between
// the domain and infrastructure layers.
type Service struct {
	accounts domain.Repository
	hasher   PasswordHasher
	tokens   TokenGenerator
	validate *validator.Validate
	nowFunc  func() time.Time
}

// NewService constructs an account service.
func NewService(accounts domain.Repository, hasher PasswordHasher, tokens TokenGenerator) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
		nowFunc:  time.Now,
	}
}

type credentials struct {
	Name     string `validate:"required,min=5"`
	Password string `validate:"required,min=5"`
}

// Register creates a new account and returns it with the issued access token.
// The returned entity never carries the password hash.
func (s *Service) Register(ctx context.Context, name, password string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if err := s.validate.Struct(credentials{Name: name, Password: password}); err != nil {
		return nil, ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}

	acct := &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: hash,
		AccessToken:  token,
		CreatedAt:    s.nowFunc().UTC(),
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		return nil, err
	}

	return sanitize(acct), nil
}

// Login validates credentials and returns the account with its existing
// access token. Unknown names and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, name, password string) (*domain.Account, error) {
	name = strings.TrimSpace(name)

	acct, err := s.accounts.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, acct.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitize(acct), nil
}

// Authenticate resolves a bearer token to its account. An empty, altered, or
// never-issued token fails the same way: as a lookup miss.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	acct, err := s.accounts.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return sanitize(acct), nil
}

func sanitize(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	copy := *a
	copy.PasswordHash = ""
	return &copy
}
