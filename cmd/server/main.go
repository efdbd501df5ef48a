package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
	grpcadapter "github.com/simaogato/atm-backend/internal/adapter/grpc"
	httpadapter "github.com/simaogato/atm-backend/internal/adapter/http"
	"github.com/simaogato/atm-backend/internal/adapter/repository/memory"
	"github.com/simaogato/atm-backend/internal/config"
	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/logging"
	"github.com/simaogato/atm-backend/internal/usecase/directory"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
	"github.com/simaogato/atm-backend/internal/usecase/seeder"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.IsProduction)
	if err != nil {
		log.Fatal("Failed to build logger", "err", err)
	}

	// 2. Initialize the user directory (in memory)
	userRepo := memory.NewUserRepository()
	dir := directory.NewDirectory(
		userRepo,
		directory.WithBcryptCost(cfg.BcryptCost),
		directory.WithAccountOptions(domain.WithLockTimeout(cfg.LockTimeout)),
		directory.WithLogger(logger.WithPrefix("directory")),
	)

	// Seed the configured users
	seedUsers, err := seeder.ParseSeedUsers(cfg.SeedUsers)
	if err != nil {
		logger.Fatal("Invalid SEED_USERS", "err", err)
	}
	ctx := context.Background()
	created, err := seeder.NewUserSeeder(dir, seedUsers).Seed(ctx)
	if err != nil {
		logger.Fatal("Failed to seed users", "err", err)
	}
	logger.Info("Users seeded", "created", created, "configured", len(seedUsers))

	// 3. Initialize sessions, dispatcher and token authentication
	sessions := session.NewManager(dir)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sessions.Run(sweepCtx, cfg.SessionSweep)
	dispatcher := operation.NewDispatcher(dir, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiryDuration)
	authenticator := auth.NewAuthenticator(tokens, sessions, dispatcher)

	loginLimiter, err := auth.NewLoginLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Fatal("Invalid LOGIN_RATE_LIMIT", "err", err)
	}

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.LoginRateLimitInterceptor(loginLimiter),
			grpcadapter.AuthInterceptor(authenticator),
		),
	)
	grpcadapter.RegisterATMServiceServer(grpcServer, grpcadapter.NewServer(authenticator))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("Failed to listen", "addr", cfg.GRPCAddr, "err", err)
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("Failed to serve gRPC server", "err", err)
		}
	}()

	// 5. Start HTTP Server
	router, err := httpadapter.NewRouter(httpadapter.RouterConfig{
		Authenticator:  authenticator,
		LoginLimiter:   loginLimiter,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		IsProduction:   cfg.IsProduction,
	})
	if err != nil {
		logger.Fatal("Failed to build HTTP router", "err", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP server", "err", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(logger, grpcServer, httpServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(logger *log.Logger, grpcServer *grpclib.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Shutting down gracefully", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "err", err)
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}
