package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drukbank/teller/internal/model"
)

// accountRecord is the persisted form of an account in the SQLite backend.
type accountRecord struct {
	ID       string `gorm:"primaryKey"`
	Passcode string
	Category string
	Balance  string
}

func (accountRecord) TableName() string {
	return "accounts"
}

// SQLiteStore persists accounts in an embedded SQLite database. Save keeps
// the same full-rewrite semantics as the flat file: the table is replaced
// wholesale inside one database transaction.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the database at path and migrates the
// accounts table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&accountRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate accounts table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads all account rows.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Account, error) {
	var rows []accountRecord
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	var accounts []model.Account
	for _, rec := range rows {
		balance, err := decimal.NewFromString(rec.Balance)
		if err != nil {
			return nil, fmt.Errorf("account %s has bad balance %q: %w", rec.ID, rec.Balance, err)
		}
		accounts = append(accounts, model.Account{
			ID:       rec.ID,
			Passcode: rec.Passcode,
			Category: categoryFromLabel(rec.Category),
			Balance:  balance,
		})
	}
	return accounts, nil
}

// Save replaces all rows with the given accounts.
func (s *SQLiteStore) Save(ctx context.Context, accounts []model.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&accountRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear accounts: %w", err)
		}
		for _, a := range accounts {
			rec := accountRecord{
				ID:       a.ID,
				Passcode: a.Passcode,
				Category: string(a.Category),
				Balance:  a.Balance.String(),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to save account %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
