package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/gridbill/gridbill/internal/domain"
)

// SQLite is an AccountStore backed by a local SQLite database.
// The schema is created on open and the seed set is inserted only when the
// accounts table is empty; afterwards the store is read-only.
type SQLite struct {
	db *sql.DB
}

// Migrations returns the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id       TEXT PRIMARY KEY,
			type     TEXT NOT NULL CHECK (type IN ('ELECTRICITY', 'GAS')),
			address  TEXT NOT NULL,
			balance  REAL NOT NULL DEFAULT 0,
			position INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts(type)`,
	}
}

// OpenSQLite opens (creating if needed) the database at path and seeds it.
// A nil seed uses SeedAccounts.
func OpenSQLite(path string, seed []domain.Account) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate accounts schema: %w", err)
		}
	}

	s := &SQLite{db: db}
	if seed == nil {
		seed = SeedAccounts()
	}
	if err := s.seedIfEmpty(seed); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) seedIfEmpty(seed []domain.Account) error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	for i, a := range seed {
		_, err := tx.Exec(
			`INSERT INTO accounts (id, type, address, balance, position) VALUES (?, ?, ?, ?, ?)`,
			a.ID, string(a.Type), a.Address, a.Balance, i,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("seed account %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// ListAccounts returns all accounts in seed order.
func (s *SQLite) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, address, balance
		FROM accounts
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		var typ string
		if err := rows.Scan(&a.ID, &typ, &a.Address, &a.Balance); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = domain.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
