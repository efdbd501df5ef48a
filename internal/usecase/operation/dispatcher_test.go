package operation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/atm-backend/internal/adapter/repository/memory"
	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/usecase/directory"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

// MockRegistrar is a mock implementation of Registrar for testing
type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Register(ctx context.Context, identity, credential string) (*domain.User, error) {
	args := m.Called(ctx, identity, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setup(t *testing.T) (*Dispatcher, *directory.Directory) {
	t.Helper()
	dir := directory.NewDirectory(
		memory.NewUserRepository(),
		directory.WithBcryptCost(bcrypt.MinCost),
		directory.WithLogger(log.New(io.Discard)),
	)
	return NewDispatcher(dir, log.New(io.Discard)), dir
}

func TestDispatch_FullFlow(t *testing.T) {
	ctx := context.Background()
	d, dir := setup(t)
	s := session.New(dir)

	res, err := d.Dispatch(ctx, nil, Register{Identity: "A", Credential: "1111"})
	require.NoError(t, err)
	assert.Equal(t, KindRegister, res.Kind)
	assert.Equal(t, "A", res.Identity)

	_, err = d.Dispatch(ctx, nil, Register{Identity: "B", Credential: "2222"})
	require.NoError(t, err)

	res, err = d.Dispatch(ctx, s, Login{Identity: "A", Credential: "1111"})
	require.NoError(t, err)
	assert.Equal(t, "A", res.Identity)

	res, err = d.Dispatch(ctx, s, Deposit{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, domain.TransactionKindDeposit, res.Transaction.Kind)

	_, err = d.Dispatch(ctx, s, Withdraw{Amount: decimal.NewFromInt(150)})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	res, err = d.Dispatch(ctx, s, Transfer{To: "B", Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionKindTransferOut, res.Transaction.Kind)
	assert.Equal(t, "B", res.Transaction.Counterparty)

	res, err = d.Dispatch(ctx, s, Withdraw{Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionKindWithdraw, res.Transaction.Kind)

	res, err = d.Dispatch(ctx, s, CheckBalance{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(res.Balance))

	res, err = d.Dispatch(ctx, s, ViewHistory{})
	require.NoError(t, err)
	require.Len(t, res.History, 3)
	assert.Equal(t, domain.TransactionKindDeposit, res.History[0].Kind)
	assert.Equal(t, domain.TransactionKindTransferOut, res.History[1].Kind)
	assert.Equal(t, domain.TransactionKindWithdraw, res.History[2].Kind)

	res, err = d.Dispatch(ctx, s, Logout{})
	require.NoError(t, err)
	assert.Equal(t, KindLogout, res.Kind)

	_, err = d.Dispatch(ctx, s, CheckBalance{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestDispatch_NilSession(t *testing.T) {
	ctx := context.Background()
	d, _ := setup(t)

	ops := []Operation{
		Login{Identity: "A", Credential: "1"},
		Logout{},
		Deposit{Amount: decimal.NewFromInt(1)},
		Withdraw{Amount: decimal.NewFromInt(1)},
		Transfer{To: "B", Amount: decimal.NewFromInt(1)},
		CheckBalance{},
		ViewHistory{},
	}
	for _, op := range ops {
		t.Run(op.Kind().String(), func(t *testing.T) {
			_, err := d.Dispatch(ctx, nil, op)
			assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
		})
	}
}

func TestDispatch_NilOperation(t *testing.T) {
	d, dir := setup(t)

	_, err := d.Dispatch(context.Background(), session.New(dir), nil)
	assert.Error(t, err)
}

func TestDispatch_RegisterPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	registrar := new(MockRegistrar)
	registrar.On("Register", ctx, "A", "1111").Return(nil, domain.ErrDuplicateIdentity)
	registrar.On("Register", ctx, "C", "3333").Return(nil, errors.New("storage offline"))

	var buf bytes.Buffer
	d := NewDispatcher(registrar, log.New(&buf))

	_, err := d.Dispatch(ctx, nil, Register{Identity: "A", Credential: "1111"})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
	assert.Contains(t, buf.String(), "DUPLICATE_IDENTITY")

	_, err = d.Dispatch(ctx, nil, Register{Identity: "C", Credential: "3333"})
	assert.Equal(t, domain.CodeInternal, domain.Code(err))

	registrar.AssertExpectations(t)
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind            Kind
		name            string
		requiresSession bool
	}{
		{KindRegister, "Register", false},
		{KindLogin, "Login", false},
		{KindLogout, "Logout", false},
		{KindDeposit, "Deposit", true},
		{KindWithdraw, "Withdraw", true},
		{KindTransfer, "Transfer", true},
		{KindCheckBalance, "Check Balance", true},
		{KindViewHistory, "Transaction History", true},
		{Kind(0), "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.requiresSession, tt.kind.RequiresSession())
		})
	}

	assert.Equal(t, KindTransfer, Transfer{}.Kind())
	assert.Equal(t, KindViewHistory, ViewHistory{}.Kind())
}
