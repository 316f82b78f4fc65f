package api

import (
	"net/http"
	"time"
)

// handleGetAccounts returns the complete account set as an ordered JSON
// array, after the configured artificial delay.
// GET /api/getAccounts
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// The simulated latency respects the request context so client
	// disconnects and server shutdown are not held up.
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		s.logger.Error("list accounts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load accounts",
		})
		return
	}

	if s.metrics != nil {
		s.metrics.AccountsServed.Add(float64(len(accounts)))
		s.metrics.AccountsListSecs.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, accounts)
}
