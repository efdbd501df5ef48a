package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/simaogato/atm-backend/internal/domain"
)

// Claims identifies a session and the identity bound to it
type Claims struct {
	SessionID uuid.UUID
	Identity  string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a new TokenIssuer instance
func NewTokenIssuer(secret, issuer string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue signs a token carrying the session id as jti and the identity as subject
func (t *TokenIssuer) Issue(sessionID uuid.UUID, identity string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.expiry)

	claims := jwt.RegisteredClaims{
		ID:        sessionID.String(),
		Subject:   identity,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies a token. Any failure is reported as ErrNotAuthenticated.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", domain.ErrNotAuthenticated)
		}
		return nil, fmt.Errorf("%w: invalid token: %w", domain.ErrNotAuthenticated, err)
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token id", domain.ErrNotAuthenticated)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token subject missing", domain.ErrNotAuthenticated)
	}

	return &Claims{
		SessionID: sessionID,
		Identity:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: authorization header required", domain.ErrNotAuthenticated)
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: authorization header format must be Bearer {token}", domain.ErrNotAuthenticated)
	}
	return strings.TrimSpace(token), nil
}
