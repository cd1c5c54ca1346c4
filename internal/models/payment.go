package models

import "time"

// Payment is a monetary contribution from a person toward their edition's
// registration fee. Payments only accumulate; editing one means deleting
// and re-adding it.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// PersonID is the person this payment belongs to.
	PersonID string

	// AmountCents is the paid amount in cents. Always positive.
	AmountCents int64

	// PaidOn is the date the payment was made.
	PaidOn time.Time

	// Method is an optional free-text payment method (e.g. "pix", "cash").
	Method string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
