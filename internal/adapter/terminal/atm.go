package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/simaogato/atm-backend/internal/domain"
	"github.com/simaogato/atm-backend/internal/usecase/operation"
	"github.com/simaogato/atm-backend/internal/usecase/session"
)

var (
	guestMenu = []MenuItem{
		{Label: operation.KindLogin.String(), Kind: operation.KindLogin},
		{Label: "Create Account", Kind: operation.KindRegister},
		{Label: "Exit", Kind: kindExit},
	}
	memberMenu = []MenuItem{
		{Label: operation.KindDeposit.String(), Kind: operation.KindDeposit},
		{Label: operation.KindWithdraw.String(), Kind: operation.KindWithdraw},
		{Label: operation.KindTransfer.String(), Kind: operation.KindTransfer},
		{Label: operation.KindViewHistory.String(), Kind: operation.KindViewHistory},
		{Label: operation.KindCheckBalance.String(), Kind: operation.KindCheckBalance},
		{Label: operation.KindLogout.String(), Kind: operation.KindLogout},
	}
)

// ATM drives one session from a terminal. It only collects input, dispatches
// operations and renders their results.
type ATM struct {
	dispatcher *operation.Dispatcher
	session    *session.Session
	prompt     Prompter
	out        io.Writer
}

// NewATM creates a new ATM instance
func NewATM(dispatcher *operation.Dispatcher, s *session.Session, prompt Prompter, out io.Writer) *ATM {
	return &ATM{
		dispatcher: dispatcher,
		session:    s,
		prompt:     prompt,
		out:        out,
	}
}

// Run shows the menu until the user exits or ctx is done
func (a *ATM) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		menu, title := guestMenu, "ATM"
		if user, ok := a.session.User(); ok {
			menu, title = memberMenu, "ATM - "+user.Identity
		}

		item, err := a.prompt.Choose(title, menu)
		if errors.Is(err, ErrQuit) || (err == nil && item.Kind == kindExit) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := a.step(ctx, item.Kind); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// step runs one menu choice. Operation failures are rendered, input failures are returned.
func (a *ATM) step(ctx context.Context, kind operation.Kind) error {
	op, err := a.build(kind)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			a.println("Invalid amount.")
			return nil
		}
		return err
	}

	result, err := a.dispatcher.Dispatch(ctx, a.session, op)
	if err != nil {
		a.println(failureMessage(kind, err))
		return nil
	}

	a.render(result)
	return nil
}

// build prompts for the inputs of kind
func (a *ATM) build(kind operation.Kind) (operation.Operation, error) {
	switch kind {
	case operation.KindLogin, operation.KindRegister:
		identity, err := a.prompt.Ask("User ID", false)
		if err != nil {
			return nil, err
		}
		credential, err := a.prompt.Ask("PIN", true)
		if err != nil {
			return nil, err
		}
		if kind == operation.KindLogin {
			return operation.Login{Identity: identity, Credential: credential}, nil
		}
		return operation.Register{Identity: identity, Credential: credential}, nil

	case operation.KindDeposit, operation.KindWithdraw:
		amount, err := a.askAmount()
		if err != nil {
			return nil, err
		}
		if kind == operation.KindDeposit {
			return operation.Deposit{Amount: amount}, nil
		}
		return operation.Withdraw{Amount: amount}, nil

	case operation.KindTransfer:
		to, err := a.prompt.Ask("Receiver User ID", false)
		if err != nil {
			return nil, err
		}
		amount, err := a.askAmount()
		if err != nil {
			return nil, err
		}
		return operation.Transfer{To: to, Amount: amount}, nil

	case operation.KindCheckBalance:
		return operation.CheckBalance{}, nil
	case operation.KindViewHistory:
		return operation.ViewHistory{}, nil
	case operation.KindLogout:
		return operation.Logout{}, nil
	}
	return nil, fmt.Errorf("unsupported menu choice %s", kind)
}

func (a *ATM) askAmount() (decimal.Decimal, error) {
	raw, err := a.prompt.Ask("Amount", false)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return domain.ParseAmount(raw)
}

func (a *ATM) render(result *operation.Result) {
	switch result.Kind {
	case operation.KindLogin:
		a.println("Welcome, " + result.Identity)
	case operation.KindRegister:
		a.println("Account created for " + result.Identity + ".")
	case operation.KindLogout:
		a.println("Logged out.")
	case operation.KindDeposit, operation.KindWithdraw, operation.KindTransfer:
		a.println(result.Transaction.String())
	case operation.KindCheckBalance:
		a.println("Current balance: " + result.Balance.StringFixed(2))
	case operation.KindViewHistory:
		if len(result.History) == 0 {
			a.println("No transactions yet.")
			return
		}
		for _, tx := range result.History {
			a.println(tx.String())
		}
	}
}

func (a *ATM) println(s string) {
	fmt.Fprintln(a.out, s)
}

// failureMessage renders an operation error for the person at the ATM
func failureMessage(kind operation.Kind, err error) string {
	switch domain.Code(err) {
	case domain.CodeCredentialMismatch:
		return "Invalid credentials."
	case domain.CodeUnknownIdentity:
		if kind == operation.KindTransfer {
			return "Receiver not found."
		}
		return "Invalid credentials."
	case domain.CodeInsufficientFunds:
		return "Insufficient balance."
	case domain.CodeInvalidAmount:
		return "Invalid amount."
	case domain.CodeDuplicateIdentity:
		return "User ID already exists."
	case domain.CodeInvalidCredential:
		return "User ID and PIN are required."
	case domain.CodeSelfTransfer:
		return "Cannot transfer to your own account."
	case domain.CodeBusy:
		return "Account is busy, please try again."
	}
	return "Operation failed: " + err.Error()
}
