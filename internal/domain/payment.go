package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ─── Payment Types ──────────────────────────────────────────────────────────
// A payment request is transient: it lives for the duration of one HTTP
// request, is validated, and is discarded. Nothing is ever persisted.

// PaymentRequest is the client-submitted payment form.
type PaymentRequest struct {
	Amount      string `json:"amount"`
	CardNumber  string `json:"cardNumber"`
	ExpiryDate  string `json:"expiryDate"`
	CVV         string `json:"cvv"`
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

var (
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// Validate checks every field of the request against the payment schema.
// It returns one FieldError per failed rule, in field order. The current
// time is a parameter so expiry checks are deterministic under test.
func (p PaymentRequest) Validate(now time.Time) []FieldError {
	var errs []FieldError

	if msg := validateAmount(p.Amount); msg != "" {
		errs = append(errs, FieldError{Path: "amount", Message: msg})
	}
	if msg := validateCardNumber(p.CardNumber); msg != "" {
		errs = append(errs, FieldError{Path: "cardNumber", Message: msg})
	}
	if msg := validateExpiry(p.ExpiryDate, now); msg != "" {
		errs = append(errs, FieldError{Path: "expiryDate", Message: msg})
	}
	if !cvvRe.MatchString(p.CVV) {
		errs = append(errs, FieldError{Path: "cvv", Message: "CVV must be 3 or 4 digits"})
	}
	if strings.TrimSpace(p.AccountID) == "" {
		errs = append(errs, FieldError{Path: "accountId", Message: "account ID is required"})
	}
	if _, err := ParseAccountType(p.AccountType); err != nil {
		errs = append(errs, FieldError{Path: "accountType", Message: err.Error()})
	}

	return errs
}

func validateAmount(raw string) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "amount must be a decimal number"
	}
	if !amount.IsPositive() {
		return "amount must be greater than zero"
	}
	if amount.Exponent() < -2 {
		return "amount must have at most 2 decimal places"
	}
	return ""
}

func validateCardNumber(raw string) string {
	clean := strings.ReplaceAll(raw, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if !digitsRe.MatchString(clean) || len(clean) < 13 || len(clean) > 19 {
		return "card number must be 13-19 digits"
	}
	if !passesLuhn(clean) {
		return "card number failed checksum"
	}
	return ""
}

func validateExpiry(raw string, now time.Time) string {
	m := expiryRe.FindStringSubmatch(raw)
	if m == nil {
		return "expiry must be MM/YY"
	}
	month, _ := strconv.Atoi(m[1])
	year := 2000 + mustAtoi(m[2])

	// The card is usable through the end of its expiry month.
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return "card has expired"
	}
	return ""
}

// passesLuhn implements the standard mod-10 card number checksum.
func passesLuhn(number string) bool {
	sum := 0
	alternate := false
	for i := len(number) - 1; i >= 0; i-- {
		n := int(number[i] - '0')
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
