package models

import "time"

// PersonKind discriminates participants from staff. It is set at creation
// and never changes; no update path carries it.
type PersonKind string

const (
	KindParticipant PersonKind = "participant"
	KindStaff       PersonKind = "staff"
)

// ValidKind reports whether k is one of the two known kinds.
func ValidKind(k PersonKind) bool {
	return k == KindParticipant || k == KindStaff
}

// Person is a participant or staff member registered to exactly one edition.
type Person struct {
	ID        string
	EditionID string
	Kind      PersonKind

	FullName  string
	BirthDate time.Time

	// Contact.
	Phone string
	Email string

	// Address. PostalCode is the 8-digit CEP used for autofill lookups.
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string

	// Physical stats for shirt and bunk planning. Zero values mean the
	// field was left blank on the form.
	HeightCM  int
	WeightKG  float64
	ShirtSize string

	// Health flags. The free-text fields are meaningful only when the
	// corresponding flag is set.
	TakesMedication bool
	Medications     string
	HasAllergies    bool
	Allergies       string

	// Community affiliation.
	Parish    string
	Community string

	Notes string

	// TribeID is the participant's tribe assignment, empty when
	// unassigned. Staff use sector assignments instead.
	TribeID string

	// AvatarURL references an externally stored photo, empty when unset.
	AvatarURL string

	CreatedAt int64
}

// PersonDetail is a person joined with the relations the detail page needs.
type PersonDetail struct {
	Person
	TribeName string
	Edition   *Edition
	Payments  []Payment
	Sectors   []Sector
}
