package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/atm-backend/internal/domain"
)

// Directory is the part of the user directory a Session relies on
type Directory interface {
	Authenticate(ctx context.Context, identity, credential string) (*domain.User, error)
	Lookup(ctx context.Context, identity string) (*domain.User, error)
}

// State is the authentication state of a Session
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "AUTHENTICATED"
	}
	return "UNAUTHENTICATED"
}

// Session binds at most one authenticated User for one interaction.
// It references the User without owning it.
type Session struct {
	ID uuid.UUID

	dir       Directory
	mu        sync.RWMutex
	user      *domain.User
	expiresAt time.Time
}

// New creates an unauthenticated session
func New(dir Directory) *Session {
	return &Session{ID: uuid.New(), dir: dir}
}

// State returns the current authentication state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// User returns the bound user, if any
func (s *Session) User() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user, s.user != nil
}

// Login authenticates against the directory and binds the user on success.
// A failed login leaves the session unbound; logging in twice without a logout
// fails with ErrAlreadyAuthenticated.
func (s *Session) Login(ctx context.Context, identity, credential string) (*domain.User, error) {
	if s.State() == StateAuthenticated {
		return nil, domain.ErrAlreadyAuthenticated
	}

	user, err := s.dir.Authenticate(ctx, identity, credential)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		return nil, domain.ErrAlreadyAuthenticated
	}
	s.user = user
	return user, nil
}

// SetExpiry records when the credential naming this session stops being valid
func (s *Session) SetExpiry(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expiresAt = at
}

// ExpiresAt returns the recorded expiry; zero means the session never expires
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expiresAt
}

// Expired reports whether the session's expiry is set and not after now.
// Sessions without an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// Logout clears the bound user. It is idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
}

// Deposit credits the bound user's account
func (s *Session) Deposit(ctx context.Context, amount decimal.Decimal) (domain.Transaction, error) {
	user, err := s.subject()
	if err != nil {
		return domain.Transaction{}, err
	}
	return user.Account().Deposit(ctx, amount)
}

// Withdraw debits the bound user's account
func (s *Session) Withdraw(ctx context.Context, amount decimal.Decimal) (domain.Transaction, error) {
	user, err := s.subject()
	if err != nil {
		return domain.Transaction{}, err
	}
	return user.Account().Withdraw(ctx, amount)
}

// Transfer moves amount from the bound user's account to the account of identity to.
// The receiver must exist; nothing moves otherwise.
func (s *Session) Transfer(ctx context.Context, to string, amount decimal.Decimal) (domain.Transaction, error) {
	user, err := s.subject()
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := domain.ValidateAmount(amount); err != nil {
		return domain.Transaction{}, err
	}
	if to == user.Identity {
		return domain.Transaction{}, domain.ErrSelfTransfer
	}

	receiver, err := s.dir.Lookup(ctx, to)
	if err != nil {
		return domain.Transaction{}, err
	}

	return user.Account().Transfer(ctx, receiver.Account(), amount)
}

// Balance returns the bound user's balance
func (s *Session) Balance(ctx context.Context) (decimal.Decimal, error) {
	user, err := s.subject()
	if err != nil {
		return decimal.Zero, err
	}
	return user.Account().Balance(ctx)
}

// History returns the bound user's transactions in order of application
func (s *Session) History(ctx context.Context) ([]domain.Transaction, error) {
	user, err := s.subject()
	if err != nil {
		return nil, err
	}
	return user.Account().History(ctx)
}

func (s *Session) subject() (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.user, nil
}
