package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/atm-backend/internal/domain"
)

// Directory is the registry of users keyed by identity.
// It is constructed once per process and passed to whatever needs lookups.
type Directory struct {
	UserRepo domain.UserRepository

	bcryptCost  int
	accountOpts []domain.AccountOption
	logger      *log.Logger
}

// Option configures a Directory
type Option func(*Directory)

// WithBcryptCost sets the cost used to hash credentials
func WithBcryptCost(cost int) Option {
	return func(d *Directory) {
		d.bcryptCost = cost
	}
}

// WithAccountOptions sets the options applied to every new account
func WithAccountOptions(opts ...domain.AccountOption) Option {
	return func(d *Directory) {
		d.accountOpts = append(d.accountOpts, opts...)
	}
}

// WithLogger sets the logger used for registration events
func WithLogger(logger *log.Logger) Option {
	return func(d *Directory) {
		d.logger = logger
	}
}

// NewDirectory creates a new Directory instance
func NewDirectory(userRepo domain.UserRepository, opts ...Option) *Directory {
	d := &Directory{
		UserRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register creates a user with a fresh zero-balance account
// Logic:
//  1. Reject empty identity or credential
//  2. Fail fast if the identity is already present
//  3. Build the user (hashes the credential) and insert it; the repository
//     re-checks uniqueness atomically so concurrent registrations cannot both win
func (d *Directory) Register(ctx context.Context, identity, credential string) (*domain.User, error) {
	if strings.TrimSpace(identity) == "" || credential == "" {
		return nil, domain.ErrInvalidCredential
	}

	if _, err := d.UserRepo.GetByIdentity(ctx, identity); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrUnknownIdentity) {
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	user, err := domain.NewUser(identity, credential, d.bcryptCost, d.accountOpts...)
	if err != nil {
		return nil, err
	}

	if err := d.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	d.logger.Info("user registered", "identity", identity)
	return user, nil
}

// Authenticate returns the user whose identity and full credential match
func (d *Directory) Authenticate(ctx context.Context, identity, credential string) (*domain.User, error) {
	user, err := d.UserRepo.GetByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := user.CheckCredential(credential); err != nil {
		d.logger.Warn("credential mismatch", "identity", identity)
		return nil, err
	}

	return user, nil
}

// Lookup retrieves a user by identity without checking credentials
func (d *Directory) Lookup(ctx context.Context, identity string) (*domain.User, error) {
	return d.UserRepo.GetByIdentity(ctx, identity)
}

// Size returns the number of registered users
func (d *Directory) Size(ctx context.Context) (int, error) {
	return d.UserRepo.Count(ctx)
}
