package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gridbill/gridbill/internal/domain"
)

func TestMemory_ListAccounts(t *testing.T) {
	m := NewMemory(nil)
	accounts, err := m.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	want := SeedAccounts()
	if len(accounts) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(want))
	}
	for i := range accounts {
		if accounts[i] != want[i] {
			t.Errorf("account %d = %+v, want %+v", i, accounts[i], want[i])
		}
	}
}

// Callers must not be able to mutate the seeded set through the returned slice.
func TestMemory_ReturnsCopy(t *testing.T) {
	m := NewMemory(nil)
	first, _ := m.ListAccounts(context.Background())
	first[0].Balance = -9999

	second, _ := m.ListAccounts(context.Background())
	if second[0].Balance == -9999 {
		t.Error("mutating the returned slice changed the store")
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemory(nil).ListAccounts(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestSQLite_SeedAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.db")

	s, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	accounts, err := s.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	want := SeedAccounts()
	if len(accounts) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(want))
	}
	for i := range accounts {
		if accounts[i] != want[i] {
			t.Errorf("account %d = %+v, want %+v", i, accounts[i], want[i])
		}
	}
}

// Re-opening an existing database must not duplicate the seed rows.
func TestSQLite_SeedOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.db")
	seed := []domain.Account{
		{ID: "X-1", Type: domain.AccountGas, Address: "1 Test Lane", Balance: 5},
	}

	s, err := OpenSQLite(path, seed)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path, seed)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	accounts, err := s.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts after reopen, want 1", len(accounts))
	}
}
