package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountCategory classifies an account. It is a plain label and carries no
// behavioral difference.
type AccountCategory string

const (
	CategoryPersonal AccountCategory = "Personal"
	CategoryBusiness AccountCategory = "Business"
)

// Account represents one bank account. Balance is never negative: every
// mutating operation either succeeds or leaves the balance unchanged.
type Account struct {
	ID       string          `json:"id"`
	Passcode string          `json:"-"` // Shared secret, compared verbatim at login
	Category AccountCategory `json:"category"`
	Balance  decimal.Decimal `json:"balance"`
}

// NewAccount creates an account with a zero balance.
func NewAccount(id, passcode string, category AccountCategory) *Account {
	return &Account{
		ID:       id,
		Passcode: passcode,
		Category: category,
		Balance:  decimal.Zero,
	}
}

// Deposit adds a positive amount to the balance and returns a confirmation
// message.
func (a *Account) Deposit(amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: invalid amount for deposit", ErrInvalidTransaction)
	}
	a.Balance = a.Balance.Add(amount)
	return "Deposit completed.", nil
}

// Withdraw removes amount from the balance. The amount must be positive and
// must not exceed the available balance.
func (a *Account) Withdraw(amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return "", fmt.Errorf("%w: insufficient funds or invalid amount for withdrawal", ErrInvalidTransaction)
	}
	a.Balance = a.Balance.Sub(amount)
	return "Withdrawal completed.", nil
}

// Transfer withdraws amount from this account and deposits it into the
// recipient. A failed withdrawal is re-signaled as an invalid transfer with
// the same message; the deposit cannot fail once the withdrawal has
// succeeded, since the amount is already known to be positive.
func (a *Account) Transfer(amount decimal.Decimal, recipient *Account) (string, error) {
	if _, err := a.Withdraw(amount); err != nil {
		return "", fmt.Errorf("%w: insufficient funds or invalid amount for withdrawal", ErrInvalidTransfer)
	}
	_, _ = recipient.Deposit(amount)
	return "Transfer completed.", nil
}

// TopUpMobile deducts amount from the balance in favor of the given mobile
// number. The number must be exactly 8 decimal digits; the format check is
// evaluated before the funds check.
func (a *Account) TopUpMobile(number string, amount decimal.Decimal) (string, error) {
	if !isMobileNumber(number) || !amount.IsPositive() {
		return "", fmt.Errorf("%w: invalid mobile number or top-up amount", ErrInvalidTransaction)
	}
	if a.Balance.LessThan(amount) {
		return "", fmt.Errorf("%w: insufficient funds for top-up", ErrInvalidTransaction)
	}
	a.Balance = a.Balance.Sub(amount)
	return fmt.Sprintf("Topped up Nu. %s to %s.", amount, number), nil
}

// isMobileNumber reports whether s is exactly 8 ASCII digits.
func isMobileNumber(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
