package auth

import (
	"context"
	"fmt"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/simaogato/atm-backend/internal/domain"
)

// LoginLimiter throttles login attempts per key (identity or client address)
type LoginLimiter struct {
	limiter *limiter.Limiter
}

// NewLoginLimiter creates a limiter from a formatted rate such as "5-M"
func NewLoginLimiter(formatted string) (*LoginLimiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid login rate %q: %w", formatted, err)
	}
	return &LoginLimiter{limiter: limiter.New(memory.NewStore(), rate)}, nil
}

// Allow consumes one attempt for key. It fails with ErrTooManyAttempts once the rate is reached.
func (l *LoginLimiter) Allow(ctx context.Context, key string) error {
	lctx, err := l.limiter.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check login rate: %w", err)
	}
	if lctx.Reached {
		return fmt.Errorf("%w: limit %d reached", domain.ErrTooManyAttempts, lctx.Limit)
	}
	return nil
}
