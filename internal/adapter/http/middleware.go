package http

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// context keys stored on the gin context
const (
	loggerKey  = "logger"
	sessionKey = "session"
)

// SessionResolver resolves an Authorization header value to a session
type SessionResolver interface {
	Resolve(header string) (*session.Session, error)
}

// RequestLogger injects a request-scoped logger and logs each completed request
func RequestLogger(baseLogger *log.Logger) gin.HandlerFunc {
	baseLogger = baseLogger.WithPrefix("http")
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		requestLogger := baseLogger.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		c.Header("X-Request-ID", requestID)
		c.Set(loggerKey, requestLogger)

		c.Next()

		requestLogger.Info("request completed",
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// RequireSession rejects requests without a bearer token bound to a live session
func RequireSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := resolver.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, err)
			return
		}

		if user, ok := s.User(); ok {
			c.Set(loggerKey, loggerFrom(c).With("identity", user.Identity))
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// LoginRateLimit throttles login attempts per client address
func LoginRateLimit(limiter *auth.LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := limiter.Allow(c.Request.Context(), c.ClientIP()); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// loggerFrom returns the request-scoped logger, falling back to the default logger
func loggerFrom(c *gin.Context) *log.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if logger, ok := v.(*log.Logger); ok {
			return logger
		}
	}
	return log.Default()
}

// sessionFrom returns the session attached by RequireSession
func sessionFrom(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
