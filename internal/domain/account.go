package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"
)

// DefaultLockTimeout bounds how long an operation waits for an account lock
const DefaultLockTimeout = 250 * time.Millisecond

// Account owns a balance and an append-only transaction log.
// The balance and history pair is a single unit of mutual exclusion guarded by lock.
type Account struct {
	owner       string
	lock        *semaphore.Weighted
	lockTimeout time.Duration
	now         func() time.Time

	balance decimal.Decimal
	history []Transaction
}

// AccountOption configures an Account
type AccountOption func(*Account)

// WithLockTimeout sets the bounded wait used when acquiring the account lock
func WithLockTimeout(d time.Duration) AccountOption {
	return func(a *Account) {
		if d > 0 {
			a.lockTimeout = d
		}
	}
}

// WithClock overrides the clock used to timestamp transactions
func WithClock(now func() time.Time) AccountOption {
	return func(a *Account) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAccount creates an empty account (balance 0, empty history) for owner
func NewAccount(owner string, opts ...AccountOption) *Account {
	a := &Account{
		owner:       owner,
		lock:        semaphore.NewWeighted(1),
		lockTimeout: DefaultLockTimeout,
		now:         time.Now,
		balance:     decimal.Zero,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Owner returns the identity of the user owning this account
func (a *Account) Owner() string {
	return a.owner
}

// Deposit appends a DEPOSIT transaction and increases the balance by amount
func (a *Account) Deposit(ctx context.Context, amount decimal.Decimal) (Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return Transaction{}, err
	}

	if err := a.acquire(ctx); err != nil {
		return Transaction{}, err
	}
	defer a.release()

	return a.credit(TransactionKindDeposit, amount, "", a.now()), nil
}

// Withdraw decreases the balance by amount and appends a WITHDRAW transaction.
// If amount exceeds the balance it fails with ErrInsufficientFunds and nothing changes.
func (a *Account) Withdraw(ctx context.Context, amount decimal.Decimal) (Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return Transaction{}, err
	}

	if err := a.acquire(ctx); err != nil {
		return Transaction{}, err
	}
	defer a.release()

	if amount.GreaterThan(a.balance) {
		return Transaction{}, ErrInsufficientFunds
	}
	return a.debit(TransactionKindWithdraw, amount, "", a.now()), nil
}

// Transfer moves amount from this account to target.
// Logic:
//  1. Validate amount and reject transfers to self
//  2. Lock both accounts in owner order so opposite transfers cannot deadlock
//  3. Check funds; on failure neither account changes
//  4. Debit self with TRANSFER_OUT and credit target with TRANSFER_IN under both locks
//
// It returns the TRANSFER_OUT record appended to this account.
func (a *Account) Transfer(ctx context.Context, target *Account, amount decimal.Decimal) (Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return Transaction{}, err
	}
	if target == nil {
		return Transaction{}, ErrUnknownIdentity
	}
	if target == a || target.owner == a.owner {
		return Transaction{}, ErrSelfTransfer
	}

	first, second := a, target
	if second.owner < first.owner {
		first, second = second, first
	}

	if err := first.acquire(ctx); err != nil {
		return Transaction{}, err
	}
	defer first.release()

	if err := second.acquire(ctx); err != nil {
		return Transaction{}, err
	}
	defer second.release()

	if amount.GreaterThan(a.balance) {
		return Transaction{}, ErrInsufficientFunds
	}

	now := a.now()
	out := a.debit(TransactionKindTransferOut, amount, target.owner, now)
	target.credit(TransactionKindTransferIn, amount, a.owner, now)
	return out, nil
}

// Balance returns the current balance
func (a *Account) Balance(ctx context.Context) (decimal.Decimal, error) {
	if err := a.acquire(ctx); err != nil {
		return decimal.Zero, err
	}
	defer a.release()

	return a.balance, nil
}

// History returns a copy of the transaction log in order of application
func (a *Account) History(ctx context.Context) ([]Transaction, error) {
	if err := a.acquire(ctx); err != nil {
		return nil, err
	}
	defer a.release()

	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out, nil
}

// acquire takes the account lock, waiting at most lockTimeout
func (a *Account) acquire(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.lockTimeout)
	defer cancel()

	if err := a.lock.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: account %s: %w", ErrBusy, a.owner, err)
	}
	return nil
}

func (a *Account) release() {
	a.lock.Release(1)
}

// credit and debit must be called with the lock held
func (a *Account) credit(kind TransactionKind, amount decimal.Decimal, counterparty string, at time.Time) Transaction {
	a.balance = a.balance.Add(amount)
	return a.appendTx(kind, amount, counterparty, at)
}

func (a *Account) debit(kind TransactionKind, amount decimal.Decimal, counterparty string, at time.Time) Transaction {
	a.balance = a.balance.Sub(amount)
	return a.appendTx(kind, amount, counterparty, at)
}

func (a *Account) appendTx(kind TransactionKind, amount decimal.Decimal, counterparty string, at time.Time) Transaction {
	tx := Transaction{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		Timestamp:    at,
		Counterparty: counterparty,
	}
	a.history = append(a.history, tx)
	return tx
}
