// Package session drives the interactive menu loop: it reads one action at
// a time, dispatches to the account or the bank, persists, and reports
// domain failures without ending the session.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drukbank/teller/internal/bank"
	"github.com/drukbank/teller/internal/model"
)

const topMenu = `
Hello. How can I assist you?
1. Open Account
2. Login to your Account
3. Exit`

const accountMenu = `
1. Check funds
2. Deposit
3. Withdraw
4. Transfer
5. Mobile Top-up
6. Delete Account
7. Logout`

// Session runs the console dialogue against one bank. All input and output
// go through the given reader and writer, so the whole dialogue is testable
// with scripted input.
type Session struct {
	bank   *bank.Bank
	in     *bufio.Scanner
	out    io.Writer
	logger log.Logger
}

// New creates a session over the given prompt/response channel.
func New(b *bank.Bank, in io.Reader, out io.Writer, logger log.Logger) *Session {
	return &Session{
		bank:   b,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run loops on the top-level menu until the user selects Exit, the input
// ends, or the context is canceled.
func (s *Session) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		fmt.Fprintln(s.out, topMenu)
		choice, ok := s.readLine("Enter your choice: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			s.openAccount(ctx)
		case "2":
			s.login(ctx)
		case "3":
			return nil
		default:
			fmt.Fprintln(s.out, "Please select a valid option.")
		}
	}
	return ctx.Err()
}

// openAccount prompts for a category, creates the account, and surfaces the
// generated credentials once.
func (s *Session) openAccount(ctx context.Context) {
	kind, ok := s.readLine("Select account type (1 for Personal, 2 for Business): ")
	if !ok {
		return
	}

	var category model.AccountCategory
	switch kind {
	case "1":
		category = model.CategoryPersonal
	case "2":
		category = model.CategoryBusiness
	default:
		fmt.Fprintln(s.out, "Unsupported account type")
		return
	}

	account, err := s.bank.OpenAccount(ctx, category)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintf(s.out, "Account created. Account id: %s, Passcode: %s\n", account.ID, account.Passcode)
}

// login authenticates and, on success, runs the account menu until logout
// or deletion.
func (s *Session) login(ctx context.Context) {
	id, ok := s.readLine("Enter your account id: ")
	if !ok {
		return
	}
	passcode, ok := s.readLine("Enter your passcode: ")
	if !ok {
		return
	}

	account, err := s.bank.Login(id, passcode)
	if err != nil {
		s.reportError(err)
		return
	}

	sessionID := uuid.New()
	logger := log.With(s.logger, "session_id", sessionID, "account_id", account.ID)
	_ = level.Info(logger).Log("msg", "login")

	for ctx.Err() == nil {
		fmt.Fprintln(s.out, accountMenu)
		action, ok := s.readLine("Enter your choice: ")
		if !ok {
			return
		}
		if !s.dispatch(ctx, account, action, logger) {
			break
		}
	}
	_ = level.Info(logger).Log("msg", "logout")
}

// dispatch runs one action against the logged-in account. It returns false
// when the session should end (logout or account deletion). Every domain
// failure is reported and the session continues; the store is persisted
// after every state-changing action.
func (s *Session) dispatch(ctx context.Context, account *model.Account, action string, logger log.Logger) bool {
	_ = level.Debug(logger).Log("msg", "action", "choice", action)

	switch action {
	case "1":
		fmt.Fprintf(s.out, "Your funds: %s\n", account.Balance)
		return true

	case "2":
		amount, err := s.readAmount("Please input the deposit amount: ")
		if err != nil {
			s.reportError(err)
			return true
		}
		s.runTransaction(ctx, func() (string, error) { return account.Deposit(amount) })
		return true

	case "3":
		amount, err := s.readAmount("Please input the withdrawal amount: ")
		if err != nil {
			s.reportError(err)
			return true
		}
		s.runTransaction(ctx, func() (string, error) { return account.Withdraw(amount) })
		return true

	case "4":
		recipientID, ok := s.readLine("Enter recipient account id: ")
		if !ok {
			return false
		}
		amount, err := s.readAmount("Enter amount to transfer: ")
		if err != nil {
			s.reportError(err)
			return true
		}
		recipient, err := s.bank.Account(recipientID)
		if err != nil {
			s.reportError(err)
			return true
		}
		s.runTransaction(ctx, func() (string, error) { return account.Transfer(amount, recipient) })
		return true

	case "5":
		number, ok := s.readLine("Enter mobile number: ")
		if !ok {
			return false
		}
		amount, err := s.readAmount("Enter amount to top up: ")
		if err != nil {
			s.reportError(err)
			return true
		}
		s.runTransaction(ctx, func() (string, error) { return account.TopUpMobile(number, amount) })
		return true

	case "6":
		if err := s.bank.DeleteAccount(ctx, account.ID); err != nil {
			s.reportError(err)
			return true
		}
		fmt.Fprintln(s.out, "Account deletion successful")
		return false

	case "7":
		return false

	default:
		fmt.Fprintln(s.out, "Invalid option.")
		return true
	}
}

// runTransaction executes one balance mutation, reports the outcome, and
// persists the store when the mutation succeeded.
func (s *Session) runTransaction(ctx context.Context, op func() (string, error)) {
	msg, err := op()
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, msg)
	if err := s.bank.Persist(ctx); err != nil {
		s.reportError(err)
	}
}

// readLine prompts and reads one trimmed line. ok is false when the input
// has ended.
func (s *Session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// readAmount reads one line and parses it as a decimal amount.
func (s *Session) readAmount(prompt string) (decimal.Decimal, error) {
	text, ok := s.readLine(prompt)
	if !ok {
		return decimal.Zero, io.EOF
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", model.ErrMalformedInput, text)
	}
	return amount, nil
}

// reportError prints a domain failure and keeps the session alive. Input
// ending mid-prompt is not an error.
func (s *Session) reportError(err error) {
	if errors.Is(err, io.EOF) {
		return
	}
	fmt.Fprintf(s.out, "Error: %s\n", err)
	_ = level.Warn(s.logger).Log("msg", "operation failed", "err", err)
}
