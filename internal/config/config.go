package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	GRPCAddr           string `validate:"required"`
	HTTPAddr           string `validate:"required"`
	IsProduction       bool
	LogLevel           string        `validate:"oneof=debug info warn error fatal"`
	JWTSecret          string        `validate:"required,min=16"`
	JWTIssuer          string        `validate:"required"`
	JWTExpiryDuration  time.Duration `validate:"gt=0"`
	LockTimeout        time.Duration `validate:"gt=0"`
	SessionSweep       time.Duration `validate:"gt=0"`
	BcryptCost         int           `validate:"min=4,max=31"`
	LoginRateLimit     string        `validate:"required"`
	SeedUsers          string
	CORSAllowedOrigins []string `validate:"min=1,dive,required"`
}

// Load reads configuration from environment variables and a .env file if present.
// Environment variables take precedence over .env values, which take precedence over defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("HTTP_ADDR", ":8081")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "atm-backend")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("LOCK_TIMEOUT", "250ms")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("SEED_USERS", "user123:1234")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	jwtExpiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION: %w", err)
	}

	lockTimeout, err := time.ParseDuration(v.GetString("LOCK_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCK_TIMEOUT: %w", err)
	}

	sessionSweep, err := time.ParseDuration(v.GetString("SESSION_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}

	cfg := &Config{
		GRPCAddr:           v.GetString("GRPC_ADDR"),
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		JWTExpiryDuration:  jwtExpiry,
		LockTimeout:        lockTimeout,
		SessionSweep:       sessionSweep,
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		SeedUsers:          v.GetString("SEED_USERS"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.IsProduction && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("invalid configuration: JWT_SECRET must be set in production")
	}

	return cfg, nil
}
