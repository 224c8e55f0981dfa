package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		amount      string
		wantBalance string
		wantErr     bool
	}{
		{
			name:        "valid deposit",
			start:       "1000",
			amount:      "200",
			wantBalance: "1200",
		},
		{
			name:        "fractional deposit",
			start:       "0",
			amount:      "0.01",
			wantBalance: "0.01",
		},
		{
			name:        "zero amount",
			start:       "1000",
			amount:      "0",
			wantBalance: "1000",
			wantErr:     true,
		},
		{
			name:        "negative amount",
			start:       "1000",
			amount:      "-50",
			wantBalance: "1000",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccount("12345", "1234", CategoryPersonal)
			a.Balance = dec(tt.start)

			msg, err := a.Deposit(dec(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deposit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidTransaction) {
				t.Errorf("Deposit() error = %v, want ErrInvalidTransaction", err)
			}
			if !tt.wantErr && msg != "Deposit completed." {
				t.Errorf("Deposit() message = %q, want %q", msg, "Deposit completed.")
			}
			if !a.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", a.Balance, tt.wantBalance)
			}
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		amount      string
		wantBalance string
		wantErr     bool
	}{
		{
			name:        "valid withdrawal",
			start:       "1000",
			amount:      "300",
			wantBalance: "700",
		},
		{
			name:        "withdraw entire balance",
			start:       "1000",
			amount:      "1000",
			wantBalance: "0",
		},
		{
			name:        "exceeds balance",
			start:       "100",
			amount:      "100.01",
			wantBalance: "100",
			wantErr:     true,
		},
		{
			name:        "zero amount",
			start:       "100",
			amount:      "0",
			wantBalance: "100",
			wantErr:     true,
		},
		{
			name:        "negative amount",
			start:       "100",
			amount:      "-10",
			wantBalance: "100",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccount("12345", "1234", CategoryBusiness)
			a.Balance = dec(tt.start)

			_, err := a.Withdraw(dec(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Withdraw() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidTransaction) {
				t.Errorf("Withdraw() error = %v, want ErrInvalidTransaction", err)
			}
			if !a.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", a.Balance, tt.wantBalance)
			}
		})
	}
}

func TestAccount_Transfer(t *testing.T) {
	t.Run("successful transfer moves amount between accounts", func(t *testing.T) {
		from := NewAccount("11111", "1111", CategoryPersonal)
		from.Balance = dec("900")
		to := NewAccount("22222", "2222", CategoryBusiness)
		to.Balance = dec("500")

		msg, err := from.Transfer(dec("400"), to)
		if err != nil {
			t.Fatalf("Transfer() error = %v", err)
		}
		if msg != "Transfer completed." {
			t.Errorf("Transfer() message = %q", msg)
		}
		if !from.Balance.Equal(dec("500")) {
			t.Errorf("sender balance = %s, want 500", from.Balance)
		}
		if !to.Balance.Equal(dec("900")) {
			t.Errorf("recipient balance = %s, want 900", to.Balance)
		}
	})

	t.Run("failed transfer leaves both balances unchanged", func(t *testing.T) {
		from := NewAccount("11111", "1111", CategoryPersonal)
		from.Balance = dec("100")
		to := NewAccount("22222", "2222", CategoryBusiness)
		to.Balance = dec("500")

		_, err := from.Transfer(dec("400"), to)
		if !errors.Is(err, ErrInvalidTransfer) {
			t.Fatalf("Transfer() error = %v, want ErrInvalidTransfer", err)
		}
		if !from.Balance.Equal(dec("100")) || !to.Balance.Equal(dec("500")) {
			t.Errorf("balances changed on failed transfer: from=%s to=%s", from.Balance, to.Balance)
		}
	})

	t.Run("non-positive amount is an invalid transfer", func(t *testing.T) {
		from := NewAccount("11111", "1111", CategoryPersonal)
		from.Balance = dec("100")
		to := NewAccount("22222", "2222", CategoryPersonal)

		_, err := from.Transfer(dec("-5"), to)
		if !errors.Is(err, ErrInvalidTransfer) {
			t.Fatalf("Transfer() error = %v, want ErrInvalidTransfer", err)
		}
	})
}

func TestAccount_TopUpMobile(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		number      string
		amount      string
		wantBalance string
		wantErr     string
	}{
		{
			name:        "valid top-up",
			start:       "500",
			number:      "17451234",
			amount:      "100",
			wantBalance: "400",
		},
		{
			name:        "number too short",
			start:       "500",
			number:      "1745123",
			amount:      "100",
			wantBalance: "500",
			wantErr:     "invalid mobile number or top-up amount",
		},
		{
			name:        "number too long",
			start:       "500",
			number:      "174512345",
			amount:      "100",
			wantBalance: "500",
			wantErr:     "invalid mobile number or top-up amount",
		},
		{
			name:        "number with letters",
			start:       "500",
			number:      "1745a234",
			amount:      "100",
			wantBalance: "500",
			wantErr:     "invalid mobile number or top-up amount",
		},
		{
			name:        "zero amount",
			start:       "500",
			number:      "17451234",
			amount:      "0",
			wantBalance: "500",
			wantErr:     "invalid mobile number or top-up amount",
		},
		{
			name:        "insufficient funds",
			start:       "50",
			number:      "17451234",
			amount:      "100",
			wantBalance: "50",
			wantErr:     "insufficient funds for top-up",
		},
		{
			// The format check runs before the funds check
			name:        "bad number and insufficient funds",
			start:       "50",
			number:      "1745",
			amount:      "100",
			wantBalance: "50",
			wantErr:     "invalid mobile number or top-up amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccount("12345", "1234", CategoryPersonal)
			a.Balance = dec(tt.start)

			msg, err := a.TopUpMobile(tt.number, dec(tt.amount))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("TopUpMobile() error = %v", err)
				}
				want := "Topped up Nu. " + tt.amount + " to " + tt.number + "."
				if msg != want {
					t.Errorf("TopUpMobile() message = %q, want %q", msg, want)
				}
			} else {
				if !errors.Is(err, ErrInvalidTransaction) {
					t.Fatalf("TopUpMobile() error = %v, want ErrInvalidTransaction", err)
				}
				if got := err.Error(); !strings.Contains(got, tt.wantErr) {
					t.Errorf("TopUpMobile() error = %q, want it to mention %q", got, tt.wantErr)
				}
			}
			if !a.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", a.Balance, tt.wantBalance)
			}
		})
	}
}

// TestAccount_Scenario walks one account through the full set of operations
// and checks the running balance after each step.
func TestAccount_Scenario(t *testing.T) {
	personal := NewAccount("10001", "1111", CategoryPersonal)
	personal.Balance = dec("1000")
	business := NewAccount("20002", "2222", CategoryBusiness)
	business.Balance = dec("500")

	msg, err := personal.Deposit(dec("200"))
	if err != nil || msg != "Deposit completed." {
		t.Fatalf("Deposit() = %q, %v", msg, err)
	}
	if !personal.Balance.Equal(dec("1200")) {
		t.Fatalf("after deposit balance = %s, want 1200", personal.Balance)
	}

	if _, err := personal.Withdraw(dec("300")); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if !personal.Balance.Equal(dec("900")) {
		t.Fatalf("after withdrawal balance = %s, want 900", personal.Balance)
	}

	if _, err := personal.Transfer(dec("400"), business); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if !personal.Balance.Equal(dec("500")) || !business.Balance.Equal(dec("900")) {
		t.Fatalf("after transfer balances = %s, %s, want 500, 900", personal.Balance, business.Balance)
	}

	if _, err := personal.TopUpMobile("17451234", dec("100")); err != nil {
		t.Fatalf("TopUpMobile() error = %v", err)
	}
	if !personal.Balance.Equal(dec("400")) {
		t.Fatalf("after top-up balance = %s, want 400", personal.Balance)
	}
}
