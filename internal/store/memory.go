// Package store provides the read-only account store backends.
// The memory backend is the default; the sqlite backend persists the same
// seed set so the dashboard survives restarts with stable account IDs.
package store

import (
	"context"

	"github.com/gridbill/gridbill/internal/domain"
)

// SeedAccounts returns the fixed demo account set, in display order.
func SeedAccounts() []domain.Account {
	return []domain.Account{
		{ID: "A-1001", Type: domain.AccountElectricity, Address: "12 Forth Street, Edinburgh", Balance: 142.50},
		{ID: "A-1002", Type: domain.AccountGas, Address: "12 Forth Street, Edinburgh", Balance: -18.20},
		{ID: "A-1003", Type: domain.AccountElectricity, Address: "9 Leith Walk, Edinburgh", Balance: 0},
		{ID: "A-1004", Type: domain.AccountGas, Address: "44 Morrison Street, Glasgow", Balance: 63.75},
		{ID: "A-1005", Type: domain.AccountElectricity, Address: "7 Byres Road, Glasgow", Balance: 220.10},
		{ID: "A-1006", Type: domain.AccountGas, Address: "31 Union Street, Aberdeen", Balance: 12.04},
	}
}

// Memory is an in-memory AccountStore seeded at construction.
// It is immutable after construction and safe for concurrent use.
type Memory struct {
	accounts []domain.Account
}

// NewMemory creates a Memory store. A nil seed uses SeedAccounts.
func NewMemory(seed []domain.Account) *Memory {
	if seed == nil {
		seed = SeedAccounts()
	}
	accounts := make([]domain.Account, len(seed))
	copy(accounts, seed)
	return &Memory{accounts: accounts}
}

// ListAccounts returns a copy of the seeded accounts in stable order.
func (m *Memory) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Account, len(m.accounts))
	copy(out, m.accounts)
	return out, nil
}
