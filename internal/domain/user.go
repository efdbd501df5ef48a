package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User binds an identity and credential to exactly one Account
type User struct {
	Identity string

	credentialHash []byte
	account        *Account
}

// NewUser creates a user with a fresh zero-balance account.
// The credential is stored as a bcrypt hash of the full credential; credentials
// longer than bcrypt accepts are rejected rather than truncated.
func NewUser(identity, credential string, cost int, opts ...AccountOption) (*User, error) {
	if strings.TrimSpace(identity) == "" || credential == "" {
		return nil, ErrInvalidCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	return &User{
		Identity:       identity,
		credentialHash: hash,
		account:        NewAccount(identity, opts...),
	}, nil
}

// Account returns the account exclusively owned by the user
func (u *User) Account() *Account {
	return u.account
}

// CheckCredential compares credential against the stored one
func (u *User) CheckCredential(credential string) error {
	err := bcrypt.CompareHashAndPassword(u.credentialHash, []byte(credential))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return ErrCredentialMismatch
	}
	return fmt.Errorf("failed to compare credential: %w", err)
}
