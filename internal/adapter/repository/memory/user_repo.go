package memory

import (
	"context"
	"sync"

	"github.com/simaogato/atm-backend/internal/domain"
)

// userRepository implements domain.UserRepository over a process-local map.
// The map lock guards the mapping only; accounts carry their own locks.
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository creates a new, empty user repository
func NewUserRepository() domain.UserRepository {
	return &userRepository{users: make(map[string]*domain.User)}
}

// Create inserts the user unless the identity is already taken
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Identity]; exists {
		return domain.ErrDuplicateIdentity
	}
	r.users[user.Identity] = user
	return nil
}

// GetByIdentity retrieves a user by identity
func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[identity]
	if !ok {
		return nil, domain.ErrUnknownIdentity
	}
	return user, nil
}

// Count returns the number of stored users
func (r *userRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}
