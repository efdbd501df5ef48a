package grpc

import (
	"context"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// Server implements the ATMService gRPC server
type Server struct {
	Authenticator *auth.Authenticator
}

// NewServer creates a new gRPC server instance
func NewServer(authenticator *auth.Authenticator) *Server {
	return &Server{Authenticator: authenticator}
}

// Register handles the Register RPC
func (s *Server) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	result, err := s.Authenticator.Dispatch(ctx, nil, operation.Register{
		Identity:   req.Identity,
		Credential: req.Credential,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &RegisterResponse{Identity: result.Identity}, nil
}

// Login handles the Login RPC. The returned token authorizes the other RPCs.
func (s *Server) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	login, err := s.Authenticator.Login(ctx, req.Identity, req.Credential)
	if err != nil {
		return nil, mapError(err)
	}

	return &LoginResponse{
		Token:     login.Token,
		ExpiresAt: login.ExpiresAt,
		Identity:  login.Identity,
		Greeting:  "Welcome, " + login.Identity,
	}, nil
}

// Logout handles the Logout RPC
func (s *Server) Logout(ctx context.Context, _ *LogoutRequest) (*LogoutResponse, error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Authenticator.Logout(ctx, sess); err != nil {
		return nil, mapError(err)
	}
	return &LogoutResponse{}, nil
}

// Deposit handles the Deposit RPC
func (s *Server) Deposit(ctx context.Context, req *DepositRequest) (*TransactionResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, mapError(err)
	}
	return s.transaction(ctx, operation.Deposit{Amount: amount})
}

// Withdraw handles the Withdraw RPC
func (s *Server) Withdraw(ctx context.Context, req *WithdrawRequest) (*TransactionResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, mapError(err)
	}
	return s.transaction(ctx, operation.Withdraw{Amount: amount})
}

// Transfer handles the Transfer RPC
func (s *Server) Transfer(ctx context.Context, req *TransferRequest) (*TransactionResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, mapError(err)
	}
	return s.transaction(ctx, operation.Transfer{To: req.To, Amount: amount})
}

// CheckBalance handles the CheckBalance RPC
func (s *Server) CheckBalance(ctx context.Context, _ *CheckBalanceRequest) (*CheckBalanceResponse, error) {
	result, err := s.dispatch(ctx, operation.CheckBalance{})
	if err != nil {
		return nil, err
	}
	return &CheckBalanceResponse{Balance: result.Balance.StringFixed(2)}, nil
}

// ViewHistory handles the ViewHistory RPC
func (s *Server) ViewHistory(ctx context.Context, _ *ViewHistoryRequest) (*ViewHistoryResponse, error) {
	result, err := s.dispatch(ctx, operation.ViewHistory{})
	if err != nil {
		return nil, err
	}
	return &ViewHistoryResponse{Transactions: toTransactions(result.History)}, nil
}

func (s *Server) transaction(ctx context.Context, op operation.Operation) (*TransactionResponse, error) {
	result, err := s.dispatch(ctx, op)
	if err != nil {
		return nil, err
	}
	return &TransactionResponse{Transaction: toTransaction(*result.Transaction)}, nil
}

// dispatch runs op on the session attached by AuthInterceptor and maps failures to statuses
func (s *Server) dispatch(ctx context.Context, op operation.Operation) (*operation.Result, error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.Authenticator.Dispatch(ctx, sess, op)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func sessionFrom(ctx context.Context) (*session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, mapError(domain.ErrNotAuthenticated)
	}
	return sess, nil
}
