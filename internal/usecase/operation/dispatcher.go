package operation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// Registrar creates users
type Registrar interface {
	Register(ctx context.Context, identity, credential string) (*domain.User, error)
}

// Result is the outcome of a dispatched operation. Only the fields relevant to
// the operation's kind are set.
type Result struct {
	Kind        Kind
	Identity    string
	Transaction *domain.Transaction
	Balance     decimal.Decimal
	History     []domain.Transaction
}

// Dispatcher executes operations against a session
type Dispatcher struct {
	registrar Registrar
	logger    *log.Logger
}

// NewDispatcher creates a new Dispatcher instance
func NewDispatcher(registrar Registrar, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{registrar: registrar, logger: logger.WithPrefix("ledger")}
}

// Dispatch runs op in the context of s. Register may be dispatched with a nil session.
func (d *Dispatcher) Dispatch(ctx context.Context, s *session.Session, op Operation) (*Result, error) {
	if op == nil {
		return nil, fmt.Errorf("nil operation")
	}
	if s == nil && op.Kind() != KindRegister {
		return nil, domain.ErrNotAuthenticated
	}

	result, err := d.dispatch(ctx, s, op)
	if err != nil {
		d.logger.Warn("operation failed", "op", op.Kind(), "identity", identityOf(s), "code", domain.Code(err), "err", err)
		return nil, err
	}

	d.logger.Info("operation completed", "op", op.Kind(), "identity", identityOf(s))
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, s *session.Session, op Operation) (*Result, error) {
	result := &Result{Kind: op.Kind()}

	switch op := op.(type) {
	case Register:
		user, err := d.registrar.Register(ctx, op.Identity, op.Credential)
		if err != nil {
			return nil, err
		}
		result.Identity = user.Identity

	case Login:
		user, err := s.Login(ctx, op.Identity, op.Credential)
		if err != nil {
			return nil, err
		}
		result.Identity = user.Identity

	case Logout:
		s.Logout()

	case Deposit:
		tx, err := s.Deposit(ctx, op.Amount)
		if err != nil {
			return nil, err
		}
		result.Transaction = &tx

	case Withdraw:
		tx, err := s.Withdraw(ctx, op.Amount)
		if err != nil {
			return nil, err
		}
		result.Transaction = &tx

	case Transfer:
		tx, err := s.Transfer(ctx, op.To, op.Amount)
		if err != nil {
			return nil, err
		}
		result.Transaction = &tx

	case CheckBalance:
		balance, err := s.Balance(ctx)
		if err != nil {
			return nil, err
		}
		result.Balance = balance

	case ViewHistory:
		history, err := s.History(ctx)
		if err != nil {
			return nil, err
		}
		result.History = history

	default:
		return nil, fmt.Errorf("unsupported operation %T", op)
	}

	return result, nil
}

func identityOf(s *session.Session) string {
	if s == nil {
		return ""
	}
	if user, ok := s.User(); ok {
		return user.Identity
	}
	return ""
}
