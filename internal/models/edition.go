package models

import "time"

// Edition represents a single occurrence of the retreat.
type Edition struct {
	// ID is the unique identifier for the edition (UUID format).
	ID string

	// Sequence is the user-assigned edition number (unique, e.g. 14 for
	// the 14th camp).
	Sequence int

	// Name is the display name of the edition (e.g. "Spring 2026").
	Name string

	// Location is where the edition takes place.
	Location string

	// StartDate and EndDate bound the edition. StartDate never follows
	// EndDate; the service layer rejects inverted ranges.
	StartDate time.Time
	EndDate   time.Time

	// FeeCents is the registration fee in cents. Zero means the edition
	// is free and every person registered to it is exempt.
	FeeCents int64

	// CreatedAt is the Unix timestamp when the edition was created.
	CreatedAt int64
}
