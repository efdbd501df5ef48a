package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of balance-affecting event
type TransactionKind string

const (
	TransactionKindDeposit     TransactionKind = "DEPOSIT"
	TransactionKindWithdraw    TransactionKind = "WITHDRAW"
	TransactionKindTransferOut TransactionKind = "TRANSFER_OUT"
	TransactionKindTransferIn  TransactionKind = "TRANSFER_IN"
)

// Label returns the human readable name shown in statements
func (k TransactionKind) Label() string {
	switch k {
	case TransactionKindDeposit:
		return "Deposit"
	case TransactionKindWithdraw:
		return "Withdraw"
	case TransactionKindTransferOut:
		return "Transfer Sent"
	case TransactionKindTransferIn:
		return "Transfer Received"
	default:
		return string(k)
	}
}

// IsCredit reports whether the kind increases the balance
func (k TransactionKind) IsCredit() bool {
	return k == TransactionKindDeposit || k == TransactionKindTransferIn
}

// IsTransfer reports whether the kind is one half of a transfer
func (k TransactionKind) IsTransfer() bool {
	return k == TransactionKindTransferOut || k == TransactionKindTransferIn
}

// Transaction is an immutable record of one balance-affecting event.
// Values are copied out of an Account's log, never shared by reference.
type Transaction struct {
	ID           uuid.UUID
	Kind         TransactionKind
	Amount       decimal.Decimal // ABSOLUTE VALUE (Always Positive)
	Timestamp    time.Time
	Counterparty string // Other side of a transfer, empty otherwise
}

// Validate ensures the transaction adheres to domain rules
func (t Transaction) Validate() error {
	switch t.Kind {
	case TransactionKindDeposit, TransactionKindWithdraw:
		if t.Counterparty != "" {
			return errors.New("only transfers may have a counterparty")
		}
	case TransactionKindTransferOut, TransactionKindTransferIn:
		if t.Counterparty == "" {
			return errors.New("transfer must have a counterparty")
		}
	default:
		return errors.New("transaction kind must be DEPOSIT, WITHDRAW, TRANSFER_OUT or TRANSFER_IN")
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if t.Timestamp.IsZero() {
		return errors.New("transaction must have a timestamp")
	}

	return nil
}

// SignedAmount returns the amount with the sign it contributes to the balance
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// String renders the transaction as a statement line
func (t Transaction) String() string {
	return fmt.Sprintf("%s - %s: %s", t.Timestamp.Format(time.DateTime), t.Kind.Label(), t.Amount.StringFixed(2))
}
