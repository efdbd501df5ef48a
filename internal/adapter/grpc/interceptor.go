package grpc

import (
	"context"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// publicMethods can be called without a session token
var publicMethods = map[string]bool{
	ATMService_Register_FullMethodName: true,
	ATMService_Login_FullMethodName:    true,
}

// SessionResolver resolves an Authorization header value to a session
type SessionResolver interface {
	Resolve(header string) (*session.Session, error)
}

// AuthInterceptor returns a gRPC unary server interceptor that resolves
// the bearer token in the "authorization" metadata to a session.
// If the token is missing or its session is gone, it returns status.Unauthenticated.
// If valid, it calls the handler with the session attached to the context.
func AuthInterceptor(resolver SessionResolver) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}

		sess, err := resolver.Resolve(header)
		if err != nil {
			return nil, mapError(err)
		}

		return handler(session.NewContext(ctx, sess), req)
	}
}

// LoginRateLimitInterceptor throttles Login calls per caller host and requested identity.
// Failed attempts from one host cannot lock the identity out for other hosts.
func LoginRateLimitInterceptor(limiter *auth.LoginLimiter) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if info.FullMethod != ATMService_Login_FullMethodName {
			return handler(ctx, req)
		}

		login, ok := req.(*LoginRequest)
		if !ok {
			return handler(ctx, req)
		}

		if err := limiter.Allow(ctx, peerHost(ctx)+"|"+login.Identity); err != nil {
			return nil, mapError(err)
		}
		return handler(ctx, req)
	}
}

// peerHost returns the caller's host without its port
func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}

// LoggingInterceptor logs every unary call with its status code and latency
func LoggingInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	logger = logger.WithPrefix("grpc")
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields := []interface{}{"method", info.FullMethod, "code", code.String(), "latency", time.Since(start)}
		if err != nil {
			logger.Warn("request failed", append(fields, "reason", ErrorReason(err))...)
		} else {
			logger.Info("request completed", fields...)
		}
		return resp, err
	}
}
