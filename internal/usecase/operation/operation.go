package operation

import (
	"github.com/shopspring/decimal"
)

// Kind identifies one of the closed set of ATM operations
type Kind int

const (
	KindRegister Kind = iota + 1
	KindLogin
	KindLogout
	KindDeposit
	KindWithdraw
	KindTransfer
	KindCheckBalance
	KindViewHistory
)

var kindNames = map[Kind]string{
	KindRegister:     "Register",
	KindLogin:        "Login",
	KindLogout:       "Logout",
	KindDeposit:      "Deposit",
	KindWithdraw:     "Withdraw",
	KindTransfer:     "Transfer",
	KindCheckBalance: "Check Balance",
	KindViewHistory:  "Transaction History",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// RequiresSession reports whether the operation needs an authenticated session
func (k Kind) RequiresSession() bool {
	switch k {
	case KindDeposit, KindWithdraw, KindTransfer, KindCheckBalance, KindViewHistory:
		return true
	default:
		return false
	}
}

// Operation is implemented only by the operation types of this package
type Operation interface {
	Kind() Kind
	sealed()
}

// Register creates a new user
type Register struct {
	Identity   string
	Credential string
}

// Login binds a user to the session
type Login struct {
	Identity   string
	Credential string
}

// Logout clears the session
type Logout struct{}

// Deposit credits the session's account
type Deposit struct {
	Amount decimal.Decimal
}

// Withdraw debits the session's account
type Withdraw struct {
	Amount decimal.Decimal
}

// Transfer moves funds to the account of identity To
type Transfer struct {
	To     string
	Amount decimal.Decimal
}

// CheckBalance reads the session's balance
type CheckBalance struct{}

// ViewHistory reads the session's transaction log
type ViewHistory struct{}

func (Register) Kind() Kind     { return KindRegister }
func (Login) Kind() Kind        { return KindLogin }
func (Logout) Kind() Kind       { return KindLogout }
func (Deposit) Kind() Kind      { return KindDeposit }
func (Withdraw) Kind() Kind     { return KindWithdraw }
func (Transfer) Kind() Kind     { return KindTransfer }
func (CheckBalance) Kind() Kind { return KindCheckBalance }
func (ViewHistory) Kind() Kind  { return KindViewHistory }

func (Register) sealed()     {}
func (Login) sealed()        {}
func (Logout) sealed()       {}
func (Deposit) sealed()      {}
func (Withdraw) sealed()     {}
func (Transfer) sealed()     {}
func (CheckBalance) sealed() {}
func (ViewHistory) sealed()  {}
