package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
)

// RouterConfig holds the dependencies of the HTTP router
type RouterConfig struct {
	Authenticator  *auth.Authenticator
	LoginLimiter   *auth.LoginLimiter
	Logger         *log.Logger
	AllowedOrigins []string
	IsProduction   bool
}

// NewRouter builds the gin engine serving the ATM API under /api/v1
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(cfg.Authenticator)
	requireSession := RequireSession(cfg.Authenticator)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users", h.register)
		v1.POST("/sessions", LoginRateLimit(cfg.LoginLimiter), h.login)
		v1.DELETE("/sessions/current", requireSession, h.logout)

		account := v1.Group("/account", requireSession)
		account.POST("/deposit", h.deposit)
		account.POST("/withdraw", h.withdraw)
		account.POST("/transfer", h.transfer)
		account.GET("/balance", h.balance)
		account.GET("/history", h.history)
	}

	return r, nil
}
