package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/observability"
	"github.com/gridbill/gridbill/internal/store"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type failingStore struct{}

func (failingStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return nil, errors.New("backend gone")
}

func newTestServer(t *testing.T, st domain.AccountStore) http.Handler {
	t.Helper()
	if st == nil {
		st = store.NewMemory(nil)
	}
	s := NewServer(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.SetAccountsDelay(0)
	s.SetClock(func() time.Time { return fixedNow })
	return s.Handler()
}

func validPayment() map[string]string {
	return map[string]string{
		"amount":      "50.00",
		"cardNumber":  "4532 0151 1283 0366",
		"expiryDate":  "12/30",
		"cvv":         "123",
		"accountId":   "A-1001",
		"accountType": "ELECTRICITY",
	}
}

func postPayment(t *testing.T, h http.Handler, body []byte) (*httptest.ResponseRecorder, paymentResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/processPayment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp paymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return rec, resp
}

func TestGetAccounts(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/getAccounts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var accounts []domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("decode accounts: %v", err)
	}
	want := store.SeedAccounts()
	if len(accounts) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(want))
	}
	for i := range accounts {
		if accounts[i].ID != want[i].ID {
			t.Errorf("account %d = %q, want %q (order must be stable)", i, accounts[i].ID, want[i].ID)
		}
	}
}

func TestGetAccounts_StoreFailure(t *testing.T) {
	h := newTestServer(t, failingStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/getAccounts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "backend gone") {
		t.Error("internal error detail leaked to client")
	}
}

func TestProcessPayment_Valid(t *testing.T) {
	h := newTestServer(t, nil)
	body, _ := json.Marshal(validPayment())

	rec, resp := postPayment(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Reference == "" {
		t.Error("reference missing from accepted payment")
	}
}

func TestProcessPayment_NegativeAmount(t *testing.T) {
	h := newTestServer(t, nil)
	payment := validPayment()
	payment["amount"] = "-5"
	body, _ := json.Marshal(payment)

	rec, resp := postPayment(t, h, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}

	found := false
	for _, e := range resp.Errors {
		if e.Path == "amount" {
			found = true
		}
	}
	if !found {
		t.Errorf("no amount field error in %+v", resp.Errors)
	}
}

func TestProcessPayment_ExpiredCard(t *testing.T) {
	h := newTestServer(t, nil)
	payment := validPayment()
	payment["expiryDate"] = "01/20"
	body, _ := json.Marshal(payment)

	rec, resp := postPayment(t, h, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Path != "expiryDate" {
		t.Errorf("errors = %+v, want single expiryDate error", resp.Errors)
	}
}

func TestProcessPayment_MalformedJSON(t *testing.T) {
	h := newTestServer(t, nil)

	rec, resp := postPayment(t, h, []byte(`{"amount": `))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if len(resp.Errors) != 0 {
		t.Errorf("malformed body should not produce field errors, got %+v", resp.Errors)
	}
}

func TestHealthAndVersion(t *testing.T) {
	h := newTestServer(t, nil)

	for path, key := range map[string]string{"/health": "status", "/api/version": "version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if body[key] == "" {
			t.Errorf("%s: missing %q field", path, key)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(store.NewMemory(nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.SetAccountsDelay(0)
	s.EnableMetrics(observability.New())
	h := s.Handler()

	// Generate one request so counters exist.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/getAccounts", nil))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gridbill_http_requests_total") {
		t.Error("request counter missing from /metrics output")
	}
}

func TestAccountsDelayHonorsContext(t *testing.T) {
	s := NewServer(store.NewMemory(nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.SetAccountsDelay(5 * time.Second)
	h := s.Handler()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/getAccounts", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return promptly after context cancellation")
	}
}
