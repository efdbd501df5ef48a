package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/simaogato/atm-backend/internal/domain"
)

// DefaultSeedUsers is the user the ATM ships with
const DefaultSeedUsers = "user123:1234"

// SeedUser defines an identity/credential pair registered at startup
type SeedUser struct {
	Identity   string
	Credential string
}

// Directory is the part of the user directory the seeder needs
type Directory interface {
	Register(ctx context.Context, identity, credential string) (*domain.User, error)
	Lookup(ctx context.Context, identity string) (*domain.User, error)
}

// UserSeeder handles seeding of the initial users
type UserSeeder struct {
	dir   Directory
	users []SeedUser
}

// NewUserSeeder creates a new UserSeeder instance
func NewUserSeeder(dir Directory, users []SeedUser) *UserSeeder {
	return &UserSeeder{
		dir:   dir,
		users: users,
	}
}

// ParseSeedUsers parses a comma separated list of identity:credential pairs
func ParseSeedUsers(s string) ([]SeedUser, error) {
	var users []SeedUser
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		identity, credential, ok := strings.Cut(pair, ":")
		if !ok || identity == "" || credential == "" {
			return nil, fmt.Errorf("invalid seed user %q, want identity:credential", pair)
		}
		users = append(users, SeedUser{Identity: identity, Credential: credential})
	}
	return users, nil
}

// Seed ensures all seed users exist in the directory.
// Users that already exist are left untouched.
func (s *UserSeeder) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range s.users {
		_, err := s.dir.Lookup(ctx, seed.Identity)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUnknownIdentity) {
			return created, fmt.Errorf("failed to look up seed user %s: %w", seed.Identity, err)
		}

		if _, err := s.dir.Register(ctx, seed.Identity, seed.Credential); err != nil {
			if errors.Is(err, domain.ErrDuplicateIdentity) {
				continue
			}
			return created, fmt.Errorf("failed to seed user %s: %w", seed.Identity, err)
		}
		created++
	}

	return created, nil
}
