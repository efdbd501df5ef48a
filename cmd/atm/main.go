package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/simaogato/atm-backend/internal/adapter/repository/memory"
	"github.com/simaogato/atm-backend/internal/adapter/terminal"
	"github.com/simaogato/atm-backend/internal/config"
	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/logging"
	"github.com/simaogato/atm-backend/internal/usecase/directory"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
	"github.com/simaogato/atm-backend/internal/usecase/seeder"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// main runs a single interactive ATM session against an in-memory directory
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}

	// Ledger logs would interleave with the menu, so only warnings reach the terminal
	logger, err := logging.New(os.Stderr, "warn", cfg.IsProduction)
	if err != nil {
		log.Fatal("Failed to build logger", "err", err)
	}

	dir := directory.NewDirectory(
		memory.NewUserRepository(),
		directory.WithBcryptCost(cfg.BcryptCost),
		directory.WithAccountOptions(domain.WithLockTimeout(cfg.LockTimeout)),
		directory.WithLogger(logger),
	)

	seedUsers, err := seeder.ParseSeedUsers(cfg.SeedUsers)
	if err != nil {
		logger.Fatal("Invalid SEED_USERS", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := seeder.NewUserSeeder(dir, seedUsers).Seed(ctx); err != nil {
		logger.Fatal("Failed to seed users", "err", err)
	}

	atm := terminal.NewATM(
		operation.NewDispatcher(dir, logger),
		session.New(dir),
		terminal.HuhPrompter{},
		os.Stdout,
	)
	if err := atm.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("ATM stopped", "err", err)
	}
}
