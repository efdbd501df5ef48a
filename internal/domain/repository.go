package domain

import "context"

// UserRepository defines the interface for the identity -> User mapping behind the Directory
type UserRepository interface {
	// Create inserts a user. It returns ErrDuplicateIdentity if the identity is taken;
	// the check and the insert happen atomically.
	Create(ctx context.Context, user *User) error

	// GetByIdentity retrieves a user by identity, or ErrUnknownIdentity
	GetByIdentity(ctx context.Context, identity string) (*User, error)

	// Count returns the number of registered users
	Count(ctx context.Context) (int, error)
}
