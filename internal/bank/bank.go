// Package bank owns the in-memory account store: it loads accounts from the
// storage backend at construction and persists the full set after every
// state-changing operation.
package bank

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/drukbank/teller/internal/model"
	"github.com/drukbank/teller/internal/repository"
)

// maxIDAttempts bounds the retry loop when a generated account id collides
// with an existing one.
const maxIDAttempts = 100

// Bank maps account ids to accounts and is the sole owner of the account
// instances. It is not safe for concurrent use; the session runs operations
// strictly one at a time.
type Bank struct {
	store    repository.Store
	accounts map[string]*model.Account
	rng      *rand.Rand
	logger   log.Logger
}

// New loads all persisted accounts through the store. A missing backing
// store yields an empty bank.
func New(ctx context.Context, store repository.Store, rng *rand.Rand, logger log.Logger) (*Bank, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	accounts := make(map[string]*model.Account, len(loaded))
	for i := range loaded {
		a := loaded[i]
		accounts[a.ID] = &a
	}
	_ = level.Info(logger).Log("msg", "accounts loaded", "count", len(accounts))

	return &Bank{
		store:    store,
		accounts: accounts,
		rng:      rng,
		logger:   logger,
	}, nil
}

// OpenAccount creates an account of the given category with a generated
// 5-digit id and 4-digit passcode, stores it, and persists. The id and
// passcode are the only credentials the caller will ever receive.
func (b *Bank) OpenAccount(ctx context.Context, category model.AccountCategory) (*model.Account, error) {
	id, err := b.newAccountID()
	if err != nil {
		return nil, err
	}
	passcode := fmt.Sprintf("%04d", 1000+b.rng.Intn(9000))

	account := model.NewAccount(id, passcode, category)
	b.accounts[id] = account
	if err := b.Persist(ctx); err != nil {
		delete(b.accounts, id)
		return nil, err
	}

	_ = level.Info(b.logger).Log("msg", "account opened", "account_id", id, "category", category)
	return account, nil
}

// newAccountID draws 5-digit ids until one is unused. Collisions are
// possible since ids are uniformly random in a small space.
func (b *Bank) newAccountID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := fmt.Sprintf("%05d", 10000+b.rng.Intn(90000))
		if _, taken := b.accounts[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate an unused account id after %d attempts", maxIDAttempts)
}

// Login returns the account when the id exists and the passcode matches
// exactly. Passcodes are compared verbatim; there is no hashing or lockout.
func (b *Bank) Login(id, passcode string) (*model.Account, error) {
	account, ok := b.accounts[id]
	if !ok || account.Passcode != passcode {
		return nil, fmt.Errorf("%w: account number or password is not recognized", model.ErrNotFound)
	}
	return account, nil
}

// Account looks up an account by id, for use as a transfer recipient.
func (b *Bank) Account(id string) (*model.Account, error) {
	account, ok := b.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: account does not exist", model.ErrNotFound)
	}
	return account, nil
}

// DeleteAccount removes the account and persists. No history is retained.
func (b *Bank) DeleteAccount(ctx context.Context, id string) error {
	if _, ok := b.accounts[id]; !ok {
		return fmt.Errorf("%w: account does not exist", model.ErrNotFound)
	}
	delete(b.accounts, id)
	if err := b.Persist(ctx); err != nil {
		return err
	}
	_ = level.Info(b.logger).Log("msg", "account deleted", "account_id", id)
	return nil
}

// Persist writes every account to the backing store, sorted by id so the
// persisted form is stable.
func (b *Bank) Persist(ctx context.Context) error {
	accounts := make([]model.Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		accounts = append(accounts, *a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	if err := b.store.Save(ctx, accounts); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// Size returns the number of accounts currently held.
func (b *Bank) Size() int {
	return len(b.accounts)
}
