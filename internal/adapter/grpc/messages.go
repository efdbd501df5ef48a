package grpc

import (
	"time"

	"github.com/simaogato/atm-backend/internal/domain"
)

// RegisterRequest creates a user with an empty account
type RegisterRequest struct {
	Identity   string `json:"identity"`
	Credential string `json:"credential"`
}

// RegisterResponse names the registered identity
type RegisterResponse struct {
	Identity string `json:"identity"`
}

// LoginRequest opens a session for identity
type LoginRequest struct {
	Identity   string `json:"identity"`
	Credential string `json:"credential"`
}

// LoginResponse carries the bearer token of the new session
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  string    `json:"identity"`
	Greeting  string    `json:"greeting"`
}

// LogoutRequest ends the session named by the call's token
type LogoutRequest struct{}

// LogoutResponse is empty
type LogoutResponse struct{}

// DepositRequest credits the session's account. Amounts are decimal strings.
type DepositRequest struct {
	Amount string `json:"amount"`
}

// WithdrawRequest debits the session's account
type WithdrawRequest struct {
	Amount string `json:"amount"`
}

// TransferRequest moves Amount from the session's account to To
type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// TransactionResponse returns the record a ledger operation appended
type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

// CheckBalanceRequest reads the session's balance
type CheckBalanceRequest struct{}

// CheckBalanceResponse holds the balance with two decimal places
type CheckBalanceResponse struct {
	Balance string `json:"balance"`
}

// ViewHistoryRequest reads the session's records
type ViewHistoryRequest struct{}

// ViewHistoryResponse lists records oldest first
type ViewHistoryResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// Transaction is the wire form of a ledger record
type Transaction struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       string    `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
	Counterparty string    `json:"counterparty,omitempty"`
	Description  string    `json:"description"`
}

func toTransaction(tx domain.Transaction) Transaction {
	return Transaction{
		ID:           tx.ID.String(),
		Kind:         string(tx.Kind),
		Amount:       tx.Amount.StringFixed(2),
		Timestamp:    tx.Timestamp,
		Counterparty: tx.Counterparty,
		Description:  tx.String(),
	}
}

func toTransactions(history []domain.Transaction) []Transaction {
	out := make([]Transaction, 0, len(history))
	for _, tx := range history {
		out = append(out, toTransaction(tx))
	}
	return out
}
