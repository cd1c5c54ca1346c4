// Package finance computes registration balances. All arithmetic is in
// integer cents; monetary strings are parsed once at the edge and never
// accumulated as floats.
package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mfonseca/acamp/internal/models"
)

// Status classifies a person's payment state against their edition's fee.
type Status string

const (
	// StatusExempt means the edition charges no fee.
	StatusExempt Status = "exempt"
	// StatusPaid means the payments cover the fee (overpayment included).
	StatusPaid Status = "paid"
	// StatusPartial means something was paid but the fee is not covered.
	StatusPartial Status = "partial"
	// StatusPending means the fee is set and nothing was paid.
	StatusPending Status = "pending"
)

// ErrBadAmount is returned by ParseAmount for input that is not a
// non-negative monetary value.
var ErrBadAmount = errors.New("invalid monetary amount")

// Summary is the financial position of one person.
type Summary struct {
	// FeeCents is the edition's registration fee.
	FeeCents int64
	// TotalPaidCents is the sum of the person's payments.
	TotalPaidCents int64
	// BalanceCents is fee minus total paid. Negative on overpayment.
	BalanceCents int64
	// Status classifies the position.
	Status Status
}

// Summarize computes the balance and status for a fee and a list of
// payments.
//
// Classification:
//   - fee = 0            → exempt
//   - balance ≤ 0        → paid
//   - 0 < paid < fee     → partial
//   - paid = 0, fee > 0  → pending
func Summarize(feeCents int64, payments []models.Payment) Summary {
	var paid int64
	for _, p := range payments {
		paid += p.AmountCents
	}

	s := Summary{
		FeeCents:       feeCents,
		TotalPaidCents: paid,
		BalanceCents:   feeCents - paid,
	}

	switch {
	case feeCents == 0:
		s.Status = StatusExempt
	case s.BalanceCents <= 0:
		s.Status = StatusPaid
	case paid > 0:
		s.Status = StatusPartial
	default:
		s.Status = StatusPending
	}
	return s
}

// ParseAmount converts a monetary form value ("150", "150.00", "150,50")
// into cents. Negative amounts and more than two decimal places are
// rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadAmount
	}
	// Brazilian forms use a comma decimal separator.
	s = strings.ReplaceAll(s, ",", ".")

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || strings.HasPrefix(whole, "-") {
		return 0, ErrBadAmount
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		if cents, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
		}
	}

	return units*100 + cents, nil
}

// FormatAmount renders cents as a plain decimal string with trailing
// zeros trimmed: 4000 → "40", 4050 → "40.5", 4055 → "40.55". This matches
// the number formatting in exported reports.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	units, frac := cents/100, cents%100
	switch {
	case frac == 0:
		return fmt.Sprintf("%s%d", sign, units)
	case frac%10 == 0:
		return fmt.Sprintf("%s%d.%d", sign, units, frac/10)
	default:
		return fmt.Sprintf("%s%d.%02d", sign, units, frac)
	}
}
