package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/format"
)

// paymentResponse is the envelope for /api/processPayment.
type paymentResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Errors    []domain.FieldError `json:"errors,omitempty"`
	Reference string              `json:"reference,omitempty"`
}

// handleProcessPayment validates a payment request and discards it.
// No ledger update, no gateway call, no persistence — the endpoint only
// reports whether the submitted form would have been accepted.
// POST /api/processPayment
func (s *Server) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("payment body unreadable", "error", err)
		s.countPayment("malformed")
		writeJSON(w, http.StatusInternalServerError, paymentResponse{
			Success: false,
			Message: "unexpected error processing payment",
		})
		return
	}

	if errs := req.Validate(s.now()); len(errs) > 0 {
		s.logger.Info("payment rejected",
			"account_id", req.AccountID,
			"card", format.MaskCard(req.CardNumber),
			"fields", len(errs),
		)
		s.countPayment("rejected")
		writeJSON(w, http.StatusBadRequest, paymentResponse{
			Success: false,
			Message: "payment validation failed",
			Errors:  errs,
		})
		return
	}

	ref := uuid.NewString()
	s.logger.Info("payment accepted",
		"account_id", req.AccountID,
		"amount", req.Amount,
		"card", format.MaskCard(req.CardNumber),
		"reference", ref,
	)
	s.countPayment("accepted")
	writeJSON(w, http.StatusOK, paymentResponse{
		Success:   true,
		Message:   "payment accepted",
		Reference: ref,
	})
}

func (s *Server) countPayment(outcome string) {
	if s.metrics != nil {
		s.metrics.PaymentOutcomes.WithLabelValues(outcome).Inc()
	}
}
