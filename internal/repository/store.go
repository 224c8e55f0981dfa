// Package repository persists account records behind a small storage port,
// so the flat-file backend can be swapped for an embedded database without
// touching the account logic.
package repository

import (
	"context"

	"github.com/drukbank/teller/internal/model"
)

// Store loads and saves the full set of account records. Save rewrites the
// whole backing store; there is no per-record update.
type Store interface {
	// Load reads all persisted accounts. A backing store that does not
	// exist yet means "no accounts", not an error.
	Load(ctx context.Context) ([]model.Account, error)

	// Save replaces the persisted state with exactly the given accounts.
	Save(ctx context.Context, accounts []model.Account) error

	// Close releases any underlying resources.
	Close() error
}

// categoryFromLabel maps a persisted category label to an AccountCategory.
// "Personal" is personal; anything else is treated as business.
func categoryFromLabel(label string) model.AccountCategory {
	if label == string(model.CategoryPersonal) {
		return model.CategoryPersonal
	}
	return model.CategoryBusiness
}
