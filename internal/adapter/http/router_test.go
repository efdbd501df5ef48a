package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
	"github.com/simaogato/atm-backend/internal/adapter/repository/memory"
	"github.com/simaogato/atm-backend/internal/usecase/directory"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, loginRate string) *gin.Engine {
	t.Helper()

	logger := log.New(io.Discard)
	dir := directory.NewDirectory(
		memory.NewUserRepository(),
		directory.WithBcryptCost(bcrypt.MinCost),
		directory.WithLogger(logger),
	)
	authn := auth.NewAuthenticator(
		auth.NewTokenIssuer("http-test-secret-0123456789", "atm-test", time.Hour),
		session.NewManager(dir),
		operation.NewDispatcher(dir, logger),
	)
	limiter, err := auth.NewLoginLimiter(loginRate)
	require.NoError(t, err)

	r, err := NewRouter(RouterConfig{
		Authenticator:  authn,
		LoginLimiter:   limiter,
		Logger:         logger,
		AllowedOrigins: []string{"*"},
	})
	require.NoError(t, err)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequestWithContext(context.Background(), method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func registerAndLogin(t *testing.T, r *gin.Engine, identity, credential string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", CredentialsRequest{Identity: identity, Credential: credential})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", CredentialsRequest{Identity: identity, Credential: credential})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[LoginResponse](t, w).Token
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, "10-M")

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_LedgerScenario(t *testing.T) {
	r := newTestRouter(t, "10-M")
	tokenA := registerAndLogin(t, r, "A", "1111")
	tokenB := registerAndLogin(t, r, "B", "2222")

	w := doJSON(t, r, http.MethodGet, "/api/v1/account/history", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[HistoryResponse](t, w)
	assert.Empty(t, empty.Transactions)
	assert.Equal(t, "No transactions yet.", empty.Message)

	w = doJSON(t, r, http.MethodPost, "/api/v1/account/deposit", tokenA, AmountRequest{Amount: "100"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "100.00", decode[TransactionResponse](t, w).Amount)

	w = doJSON(t, r, http.MethodPost, "/api/v1/account/transfer", tokenA, TransferRequest{To: "B", Amount: "40"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sent := decode[TransactionResponse](t, w)
	assert.Equal(t, "TRANSFER_OUT", sent.Kind)
	assert.Equal(t, "B", sent.Counterparty)

	w = doJSON(t, r, http.MethodPost, "/api/v1/account/withdraw", tokenB, AmountRequest{Amount: "15.50"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/account/balance", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, BalanceResponse{Identity: "A", Balance: "60.00"}, decode[BalanceResponse](t, w))

	w = doJSON(t, r, http.MethodGet, "/api/v1/account/balance", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "24.50", decode[BalanceResponse](t, w).Balance)

	w = doJSON(t, r, http.MethodGet, "/api/v1/account/history", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[HistoryResponse](t, w)
	require.Len(t, history.Transactions, 2)
	assert.Equal(t, "TRANSFER_IN", history.Transactions[0].Kind)
	assert.Equal(t, "WITHDRAW", history.Transactions[1].Kind)
	assert.Empty(t, history.Message)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/current", tokenA, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/account/balance", tokenA, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NOT_AUTHENTICATED", decode[ErrorResponse](t, w).Code)
}

func TestRouter_Errors(t *testing.T) {
	r := newTestRouter(t, "10-M")
	token := registerAndLogin(t, r, "A", "1111")

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate registration",
			method:     http.MethodPost,
			path:       "/api/v1/users",
			body:       CredentialsRequest{Identity: "A", Credential: "9999"},
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_IDENTITY",
		},
		{
			name:       "missing credential",
			method:     http.MethodPost,
			path:       "/api/v1/users",
			body:       map[string]string{"identity": "C"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CREDENTIAL",
		},
		{
			name:       "empty identity",
			method:     http.MethodPost,
			path:       "/api/v1/users",
			body:       CredentialsRequest{Identity: "", Credential: "1234"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CREDENTIAL",
		},
		{
			name:       "body not an object",
			method:     http.MethodPost,
			path:       "/api/v1/users",
			body:       "identity=C",
			wantStatus: http.StatusBadRequest,
			wantCode:   codeInvalidRequest,
		},
		{
			name:       "wrong credential",
			method:     http.MethodPost,
			path:       "/api/v1/sessions",
			body:       CredentialsRequest{Identity: "A", Credential: "111"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "CREDENTIAL_MISMATCH",
		},
		{
			name:       "unknown identity",
			method:     http.MethodPost,
			path:       "/api/v1/sessions",
			body:       CredentialsRequest{Identity: "Z", Credential: "1111"},
			wantStatus: http.StatusNotFound,
			wantCode:   "UNKNOWN_IDENTITY",
		},
		{
			name:       "no token",
			method:     http.MethodGet,
			path:       "/api/v1/account/balance",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "NOT_AUTHENTICATED",
		},
		{
			name:       "bad token",
			method:     http.MethodGet,
			path:       "/api/v1/account/balance",
			token:      "not-a-token",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "NOT_AUTHENTICATED",
		},
		{
			name:       "non-numeric amount",
			method:     http.MethodPost,
			path:       "/api/v1/account/deposit",
			token:      token,
			body:       AmountRequest{Amount: "lots"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "empty amount",
			method:     http.MethodPost,
			path:       "/api/v1/account/deposit",
			token:      token,
			body:       AmountRequest{Amount: ""},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "missing transfer amount",
			method:     http.MethodPost,
			path:       "/api/v1/account/transfer",
			token:      token,
			body:       map[string]string{"to": "B"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "sub-cent amount",
			method:     http.MethodPost,
			path:       "/api/v1/account/deposit",
			token:      token,
			body:       AmountRequest{Amount: "0.001"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "oversized amount",
			method:     http.MethodPost,
			path:       "/api/v1/account/deposit",
			token:      token,
			body:       AmountRequest{Amount: "1e50000000"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "zero amount",
			method:     http.MethodPost,
			path:       "/api/v1/account/deposit",
			token:      token,
			body:       AmountRequest{Amount: "0"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "insufficient funds",
			method:     http.MethodPost,
			path:       "/api/v1/account/withdraw",
			token:      token,
			body:       AmountRequest{Amount: "1"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name:       "receiver not found",
			method:     http.MethodPost,
			path:       "/api/v1/account/transfer",
			token:      token,
			body:       TransferRequest{To: "ghost", Amount: "1"},
			wantStatus: http.StatusNotFound,
			wantCode:   "UNKNOWN_IDENTITY",
		},
		{
			name:       "self transfer",
			method:     http.MethodPost,
			path:       "/api/v1/account/transfer",
			token:      token,
			body:       TransferRequest{To: "A", Amount: "1"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "SELF_TRANSFER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/account/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.00", decode[BalanceResponse](t, w).Balance)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	r := newTestRouter(t, "2-M")

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", CredentialsRequest{Identity: "A", Credential: "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", CredentialsRequest{Identity: "A", Credential: "x"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_ATTEMPTS", decode[ErrorResponse](t, w).Code)
}
