package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/atm-backend/internal/adapter/auth"
	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
)

// Handler serves the ATM operations over HTTP
type Handler struct {
	authn *auth.Authenticator
}

// NewHandler creates a new Handler instance
func NewHandler(authn *auth.Authenticator) *Handler {
	return &Handler{authn: authn}
}

func (h *Handler) register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	result, err := h.authn.Dispatch(c.Request.Context(), nil, operation.Register{
		Identity:   req.Identity,
		Credential: req.Credential,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Identity: result.Identity})
}

func (h *Handler) login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	login, err := h.authn.Login(c.Request.Context(), req.Identity, req.Credential)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Token:     login.Token,
		ExpiresAt: login.ExpiresAt,
		Identity:  login.Identity,
		Greeting:  "Welcome, " + login.Identity,
	})
}

func (h *Handler) logout(c *gin.Context) {
	s, ok := sessionFrom(c)
	if !ok {
		abortWithError(c, domain.ErrNotAuthenticated)
		return
	}

	if err := h.authn.Logout(c.Request.Context(), s); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deposit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.transaction(c, operation.Deposit{Amount: amount})
}

func (h *Handler) withdraw(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.transaction(c, operation.Withdraw{Amount: amount})
}

func (h *Handler) transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.transaction(c, operation.Transfer{To: req.To, Amount: amount})
}

func (h *Handler) balance(c *gin.Context) {
	result, ok := h.dispatch(c, operation.CheckBalance{})
	if !ok {
		return
	}

	resp := BalanceResponse{Balance: result.Balance.StringFixed(2)}
	if s, ok := sessionFrom(c); ok {
		if user, ok := s.User(); ok {
			resp.Identity = user.Identity
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) history(c *gin.Context) {
	result, ok := h.dispatch(c, operation.ViewHistory{})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toHistoryResponse(result.History))
}

func (h *Handler) transaction(c *gin.Context, op operation.Operation) {
	result, ok := h.dispatch(c, op)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, toTransactionResponse(*result.Transaction))
}

// dispatch runs op on the request's session. It writes the error response and reports false on failure.
func (h *Handler) dispatch(c *gin.Context, op operation.Operation) (*operation.Result, bool) {
	s, ok := sessionFrom(c)
	if !ok {
		abortWithError(c, domain.ErrNotAuthenticated)
		return nil, false
	}

	result, err := h.authn.Dispatch(c.Request.Context(), s, op)
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return result, true
}
