package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "Deposit should pass",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindDeposit,
				Amount:    decimal.NewFromInt(100),
				Timestamp: now,
			},
			wantErr: false,
		},
		{
			name: "Transfer in with counterparty should pass",
			tx: Transaction{
				ID:           uuid.New(),
				Kind:         TransactionKindTransferIn,
				Amount:       decimal.RequireFromString("40.50"),
				Timestamp:    now,
				Counterparty: "alice",
			},
			wantErr: false,
		},
		{
			name: "Transfer out without counterparty should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindTransferOut,
				Amount:    decimal.NewFromInt(40),
				Timestamp: now,
			},
			wantErr: true,
			errMsg:  "transfer must have a counterparty",
		},
		{
			name: "Withdraw with counterparty should fail",
			tx: Transaction{
				ID:           uuid.New(),
				Kind:         TransactionKindWithdraw,
				Amount:       decimal.NewFromInt(10),
				Timestamp:    now,
				Counterparty: "bob",
			},
			wantErr: true,
			errMsg:  "only transfers may have a counterparty",
		},
		{
			name: "Zero amount should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindDeposit,
				Amount:    decimal.Zero,
				Timestamp: now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "Negative amount should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKindWithdraw,
				Amount:    decimal.NewFromInt(-5),
				Timestamp: now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "Unknown kind should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Kind:      TransactionKind("REFUND"),
				Amount:    decimal.NewFromInt(5),
				Timestamp: now,
			},
			wantErr: true,
			errMsg:  "transaction kind must be",
		},
		{
			name: "Missing timestamp should fail",
			tx: Transaction{
				ID:     uuid.New(),
				Kind:   TransactionKindDeposit,
				Amount: decimal.NewFromInt(5),
			},
			wantErr: true,
			errMsg:  "transaction must have a timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(25)

	assert.True(t, Transaction{Kind: TransactionKindDeposit, Amount: amount}.SignedAmount().Equal(amount))
	assert.True(t, Transaction{Kind: TransactionKindTransferIn, Amount: amount}.SignedAmount().Equal(amount))
	assert.True(t, Transaction{Kind: TransactionKindWithdraw, Amount: amount}.SignedAmount().Equal(amount.Neg()))
	assert.True(t, Transaction{Kind: TransactionKindTransferOut, Amount: amount}.SignedAmount().Equal(amount.Neg()))
}

func TestTransaction_String(t *testing.T) {
	tx := Transaction{
		Kind:      TransactionKindTransferOut,
		Amount:    decimal.NewFromInt(40),
		Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, "2024-03-01 09:30:00 - Transfer Sent: 40.00", tx.String())
}

func TestTransactionKind_Label(t *testing.T) {
	assert.Equal(t, "Deposit", TransactionKindDeposit.Label())
	assert.Equal(t, "Withdraw", TransactionKindWithdraw.Label())
	assert.Equal(t, "Transfer Sent", TransactionKindTransferOut.Label())
	assert.Equal(t, "Transfer Received", TransactionKindTransferIn.Label())
	assert.True(t, TransactionKindTransferIn.IsTransfer())
	assert.False(t, TransactionKindDeposit.IsTransfer())
}
