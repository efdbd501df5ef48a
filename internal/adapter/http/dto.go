package http

import (
	"time"

	"github.com/simaogato/atm-backend/internal/domain"
)

// CredentialsRequest is the body of register and login requests.
// Fields are not bound as required: empty values reach the directory and
// fail with the same codes the gRPC boundary reports.
type CredentialsRequest struct {
	Identity   string `json:"identity"`
	Credential string `json:"credential"`
}

// AmountRequest is the body of deposit and withdraw requests. Amount is a decimal string.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// TransferRequest is the body of transfer requests
type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// UserResponse is returned by a successful registration
type UserResponse struct {
	Identity string `json:"identity"`
}

// LoginResponse carries the bearer token of a new session
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  string    `json:"identity"`
	Greeting  string    `json:"greeting"`
}

// TransactionResponse is the JSON form of a ledger record
type TransactionResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       string    `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
	Counterparty string    `json:"counterparty,omitempty"`
	Description  string    `json:"description"`
}

// BalanceResponse reports the balance of the session's account
type BalanceResponse struct {
	Identity string `json:"identity"`
	Balance  string `json:"balance"`
}

// HistoryResponse lists records oldest first. Message is set when there are none.
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Message      string                `json:"message,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// emptyHistoryMessage is shown when an account has no records
const emptyHistoryMessage = "No transactions yet."

func toTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID.String(),
		Kind:         string(tx.Kind),
		Amount:       tx.Amount.StringFixed(2),
		Timestamp:    tx.Timestamp,
		Counterparty: tx.Counterparty,
		Description:  tx.String(),
	}
}

func toHistoryResponse(history []domain.Transaction) HistoryResponse {
	resp := HistoryResponse{Transactions: make([]TransactionResponse, 0, len(history))}
	for _, tx := range history {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}
	if len(history) == 0 {
		resp.Message = emptyHistoryMessage
	}
	return resp
}
