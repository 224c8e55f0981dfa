package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/shopspring/decimal"

	"github.com/drukbank/teller/internal/model"
)

// FlatFileStore persists accounts as UTF-8 text, one record per line, fields
// comma-separated in the fixed order id,passcode,category,balance. Every
// save truncates and rewrites the whole file.
type FlatFileStore struct {
	path   string
	logger log.Logger
}

// NewFlatFileStore creates a store backed by the file at path. The file is
// not touched until Load or Save is called.
func NewFlatFileStore(path string, logger log.Logger) *FlatFileStore {
	return &FlatFileStore{path: path, logger: logger}
}

// Load reads the backing file line by line and reconstructs the accounts.
// A missing file means no accounts yet. Malformed lines are skipped with a
// warning rather than corrupting the store or aborting startup.
func (s *FlatFileStore) Load(ctx context.Context) ([]model.Account, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open account file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count validated per line below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read account file: %w", err)
	}

	var accounts []model.Account
	for i, rec := range records {
		if len(rec) != 4 {
			_ = level.Warn(s.logger).Log("msg", "skipping malformed account record", "line", i+1, "fields", len(rec))
			continue
		}
		balance, err := decimal.NewFromString(rec[3])
		if err != nil {
			_ = level.Warn(s.logger).Log("msg", "skipping account record with bad balance", "line", i+1, "balance", rec[3])
			continue
		}
		accounts = append(accounts, model.Account{
			ID:       rec[0],
			Passcode: rec[1],
			Category: categoryFromLabel(rec[2]),
			Balance:  balance,
		})
	}
	return accounts, nil
}

// Save rewrites the backing file with one line per account. The new content
// is written to a temporary file and renamed over the old one, so a crash
// mid-write leaves the previous file intact.
func (s *FlatFileStore) Save(ctx context.Context, accounts []model.Account) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create account file: %w", err)
	}

	w := csv.NewWriter(f)
	for _, a := range accounts {
		if err := w.Write([]string{a.ID, a.Passcode, string(a.Category), a.Balance.String()}); err != nil {
			f.Close()
			return fmt.Errorf("failed to write account record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write account file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close account file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace account file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is opened and closed within each Load and Save.
func (s *FlatFileStore) Close() error {
	return nil
}
