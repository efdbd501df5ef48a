package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  string
	Session   *session.Session
}

// Authenticator binds remote clients to sessions through bearer tokens
type Authenticator struct {
	tokens     *TokenIssuer
	sessions   *session.Manager
	dispatcher *operation.Dispatcher
}

// NewAuthenticator creates a new Authenticator instance
func NewAuthenticator(tokens *TokenIssuer, sessions *session.Manager, dispatcher *operation.Dispatcher) *Authenticator {
	return &Authenticator{
		tokens:     tokens,
		sessions:   sessions,
		dispatcher: dispatcher,
	}
}

// Login opens a session, logs it in and issues a token for it.
//
// Logic:
// 1. Open a fresh unauthenticated session
// 2. Dispatch the Login operation on it
// 3. On failure close the session so it is not tracked
// 4. Sign a token naming the session and the bound identity
// 5. Expire the session together with its token
func (a *Authenticator) Login(ctx context.Context, identity, credential string) (*LoginResult, error) {
	s := a.sessions.Open()

	result, err := a.dispatcher.Dispatch(ctx, s, operation.Login{Identity: identity, Credential: credential})
	if err != nil {
		a.sessions.Close(s.ID)
		return nil, err
	}

	token, expiresAt, err := a.tokens.Issue(s.ID, result.Identity)
	if err != nil {
		a.sessions.Close(s.ID)
		return nil, err
	}
	s.SetExpiry(expiresAt)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  result.Identity,
		Session:   s,
	}, nil
}

// Resolve returns the authenticated session named by an Authorization header value
func (a *Authenticator) Resolve(header string) (*session.Session, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	s, err := a.sessions.Get(claims.SessionID)
	if err != nil {
		return nil, err
	}

	user, ok := s.User()
	if !ok || user.Identity != claims.Identity {
		return nil, fmt.Errorf("%w: session no longer bound to %s", domain.ErrNotAuthenticated, claims.Identity)
	}
	return s, nil
}

// Logout logs the session out and releases it. Its token stops resolving.
func (a *Authenticator) Logout(ctx context.Context, s *session.Session) error {
	if _, err := a.dispatcher.Dispatch(ctx, s, operation.Logout{}); err != nil {
		return err
	}
	a.sessions.Close(s.ID)
	return nil
}

// Dispatch runs op on behalf of s
func (a *Authenticator) Dispatch(ctx context.Context, s *session.Session, op operation.Operation) (*operation.Result, error) {
	return a.dispatcher.Dispatch(ctx, s, op)
}
