// Package format provides the live-typing input formatters used by the
// payment form. All functions are total: any input string produces a
// formatted output, and formatting an already-formatted value is a no-op.
// Formatting never implies validity — validation is a separate concern.
package format

import "strings"

// CardNumber strips non-digits, truncates to 16 digits and groups the
// result into chunks of 4 separated by single spaces.
func CardNumber(s string) string {
	digits := onlyDigits(s, 16)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Expiry strips non-digits, truncates to 4 digits and inserts a slash
// after the month once at least two digits are present.
func Expiry(s string) string {
	digits := onlyDigits(s, 4)
	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// CVV strips non-digits and truncates to 4 digits.
func CVV(s string) string {
	return onlyDigits(s, 4)
}

// MaskCard reduces a card number to its last 4 digits for logging.
// Shorter inputs are fully masked.
func MaskCard(s string) string {
	digits := onlyDigits(s, len(s))
	if len(digits) <= 4 {
		return "****"
	}
	return "**** " + digits[len(digits)-4:]
}

func onlyDigits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() == max {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
