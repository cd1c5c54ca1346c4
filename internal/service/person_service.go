package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"sort"
	"time"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/finance"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

// PersonInput is the data-transfer structure for creating or updating a
// person. It intentionally has no kind field: kind is fixed at creation.
type PersonInput struct {
	FullName  string
	BirthDate time.Time

	Phone string
	Email string

	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string

	HeightCM  int
	WeightKG  float64
	ShirtSize string

	TakesMedication bool
	Medications     string
	HasAllergies    bool
	Allergies       string

	Parish    string
	Community string
	Notes     string
	AvatarURL string
}

// Validate checks the input's business rules.
func (in *PersonInput) Validate() []FieldError {
	var errs []FieldError
	if len(in.FullName) < 3 {
		errs = append(errs, FieldError{"full_name", "must have at least 3 characters"})
	}
	if in.BirthDate.IsZero() {
		errs = append(errs, FieldError{"birth_date", "is required"})
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			errs = append(errs, FieldError{"email", "is not a valid address"})
		}
	}
	return errs
}

func (in *PersonInput) apply(person *models.Person) {
	person.FullName = in.FullName
	person.BirthDate = in.BirthDate
	person.Phone = in.Phone
	person.Email = in.Email
	person.Street = in.Street
	person.Number = in.Number
	person.Complement = in.Complement
	person.District = in.District
	person.City = in.City
	person.State = in.State
	person.PostalCode = in.PostalCode
	person.HeightCM = in.HeightCM
	person.WeightKG = in.WeightKG
	person.ShirtSize = in.ShirtSize
	person.TakesMedication = in.TakesMedication
	person.Medications = in.Medications
	person.HasAllergies = in.HasAllergies
	person.Allergies = in.Allergies
	person.Parish = in.Parish
	person.Community = in.Community
	person.Notes = in.Notes
	person.AvatarURL = in.AvatarURL
}

// PersonDetail bundles the person's joined record with their financial
// summary for the detail page.
type PersonDetail struct {
	models.PersonDetail
	Finance finance.Summary
}

// TribeCount is one slice of the dashboard's tribe distribution.
type TribeCount struct {
	TribeName string
	Count     int
}

// PersonService manages people and their tribe/sector assignments.
// Mutations require admin or editor; reads any authenticated role.
type PersonService struct {
	roleChecker
	store storage.Store
}

// NewPersonService creates a person service with the given storage and
// role resolver.
func NewPersonService(store storage.Store, roles *auth.RoleResolver) *PersonService {
	return &PersonService{roleChecker: roleChecker{roles: roles}, store: store}
}

// Create registers a new person to an edition with the given kind.
func (s *PersonService) Create(ctx context.Context, callerID, editionID string, kind models.PersonKind, in PersonInput) (*models.Person, error) {
	if err := s.authorize(ctx, callerID, editors...); err != nil {
		return nil, err
	}
	if !models.ValidKind(kind) {
		return nil, &ValidationError{Fields: []FieldError{{"kind", "must be participant or staff"}}}
	}
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	// The edition must exist; a dangling reference would only fail later
	// at the foreign key.
	if _, err := s.store.GetEdition(ctx, editionID); err != nil {
		return nil, fmt.Errorf("failed to get edition: %w", err)
	}

	person := &models.Person{EditionID: editionID, Kind: kind}
	in.apply(person)
	if err := s.store.CreatePerson(ctx, person); err != nil {
		slog.Error("CreatePerson failed", "edition_id", editionID, "error", err)
		return nil, err
	}

	slog.Info("Person created", "person_id", person.ID, "edition_id", editionID, "kind", kind)
	return person, nil
}

// Update modifies an existing person. Kind and edition are immutable.
func (s *PersonService) Update(ctx context.Context, callerID, personID string, in PersonInput) error {
	if err := s.authorize(ctx, callerID, editors...); err != nil {
		return err
	}
	if errs := in.Validate(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	person := &models.Person{ID: personID}
	in.apply(person)
	if err := s.store.UpdatePerson(ctx, person); err != nil {
		slog.Error("UpdatePerson failed", "person_id", personID, "error", err)
		return err
	}

	slog.Info("Person updated", "person_id", personID)
	return nil
}

// Get returns the person's full detail, including the financial summary
// against their edition's fee. Any authenticated role.
func (s *PersonService) Get(ctx context.Context, callerID, personID string) (*PersonDetail, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	detail, err := s.store.GetPersonDetail(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	var fee int64
	if detail.Edition != nil {
		fee = detail.Edition.FeeCents
	}
	return &PersonDetail{
		PersonDetail: *detail,
		Finance:      finance.Summarize(fee, detail.Payments),
	}, nil
}

// List returns an edition's people ordered by name, optionally filtered by
// kind. Any authenticated role.
func (s *PersonService) List(ctx context.Context, callerID, editionID string, kind models.PersonKind) ([]models.Person, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	return s.store.ListPeople(ctx, editionID, kind)
}

// AssignTribe sets (or with an empty tribeID clears) a participant's tribe.
func (s *PersonService) AssignTribe(ctx context.Context, callerID, personID, tribeID string) error {
	if err := s.authorize(ctx, callerID, editors...); err != nil {
		return err
	}
	if err := s.store.SetTribe(ctx, personID, tribeID); err != nil {
		slog.Error("AssignTribe failed", "person_id", personID, "tribe_id", tribeID, "error", err)
		return err
	}
	slog.Info("Tribe assigned", "person_id", personID, "tribe_id", tribeID)
	return nil
}

// AssignSectors replaces a staff member's sector assignments with exactly
// sectorIDs. The replace is atomic and therefore idempotent in its end
// state.
func (s *PersonService) AssignSectors(ctx context.Context, callerID, personID string, sectorIDs []string) error {
	if err := s.authorize(ctx, callerID, editors...); err != nil {
		return err
	}
	if err := s.store.ReplaceSectors(ctx, personID, sectorIDs); err != nil {
		slog.Error("AssignSectors failed", "person_id", personID, "error", err)
		return err
	}
	slog.Info("Sectors assigned", "person_id", personID, "count", len(sectorIDs))
	return nil
}

// RecentSignups returns an edition's most recently registered people, for
// the dashboard widget. Any authenticated role.
func (s *PersonService) RecentSignups(ctx context.Context, callerID, editionID string, limit int) ([]models.Person, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	people, err := s.store.ListPeople(ctx, editionID, "")
	if err != nil {
		return nil, err
	}
	sort.Slice(people, func(i, j int) bool {
		return people[i].CreatedAt > people[j].CreatedAt
	})
	if limit > 0 && len(people) > limit {
		people = people[:limit]
	}
	return people, nil
}

// TribeDistribution counts an edition's participants per tribe, for the
// dashboard chart. Unassigned participants are grouped under an empty
// tribe name.
func (s *PersonService) TribeDistribution(ctx context.Context, callerID, editionID string) ([]TribeCount, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	people, err := s.store.ListPeople(ctx, editionID, models.KindParticipant)
	if err != nil {
		return nil, err
	}
	tribes, err := s.store.ListTribes(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(tribes))
	for _, tribe := range tribes {
		names[tribe.ID] = tribe.Name
	}

	counts := make(map[string]int)
	for _, person := range people {
		counts[names[person.TribeID]]++
	}

	result := make([]TribeCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, TribeCount{TribeName: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].TribeName < result[j].TribeName
	})
	return result, nil
}
