// Package domain contains the pure business types and validation rules.
// This is the innermost ring of the application: no infrastructure imports,
// only the decimal arithmetic used for money amounts.
package domain

import "context"

// ─── Account Types ──────────────────────────────────────────────────────────

// AccountType identifies the utility service an account bills for.
type AccountType string

const (
	AccountElectricity AccountType = "ELECTRICITY"
	AccountGas         AccountType = "GAS"
)

// ParseAccountType validates a raw account type string.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountElectricity, AccountGas:
		return AccountType(s), nil
	default:
		return "", ErrInvalidAccountType
	}
}

// Account is a utility billing record. Accounts are seeded at process start
// and never mutated afterwards.
type Account struct {
	ID      string      `json:"id"`
	Type    AccountType `json:"type"`
	Address string      `json:"address"`
	Balance float64     `json:"balance"` // Signed: negative means in credit
}

// ─── Filtering ──────────────────────────────────────────────────────────────

// FilterTag selects a subset of accounts by type.
type FilterTag string

const (
	FilterAll         FilterTag = "ALL"
	FilterElectricity FilterTag = FilterTag(AccountElectricity)
	FilterGas         FilterTag = FilterTag(AccountGas)
)

// ParseFilterTag validates a raw filter tag. The empty string means ALL.
func ParseFilterTag(s string) (FilterTag, error) {
	switch FilterTag(s) {
	case FilterAll, "":
		return FilterAll, nil
	case FilterElectricity, FilterGas:
		return FilterTag(s), nil
	default:
		return "", ErrInvalidFilterTag
	}
}

// FilterAccounts returns the accounts matching tag, preserving order.
// FilterAll is the identity filter.
func FilterAccounts(accounts []Account, tag FilterTag) []Account {
	if tag == FilterAll || tag == "" {
		return accounts
	}
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if FilterTag(a.Type) == tag {
			out = append(out, a)
		}
	}
	return out
}

// ─── Store Interface ────────────────────────────────────────────────────────

// AccountStore abstracts the read-only account source.
// Implementations must return accounts in a stable order.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]Account, error)
}
