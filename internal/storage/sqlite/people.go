package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

const personColumns = `id, edition_id, kind, full_name, birth_date, phone, email,
	street, number, complement, district, city, state, postal_code,
	height_cm, weight_kg, shirt_size,
	takes_medication, medications, has_allergies, allergies,
	parish, community, notes, tribe_id, avatar_url, created_at`

// CreatePerson persists a new person, generating its ID.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = nowUnix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (`+personColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		person.ID, person.EditionID, string(person.Kind), person.FullName,
		formatDate(person.BirthDate), person.Phone, person.Email,
		person.Street, person.Number, person.Complement, person.District,
		person.City, person.State, person.PostalCode,
		person.HeightCM, person.WeightKG, person.ShirtSize,
		person.TakesMedication, person.Medications, person.HasAllergies, person.Allergies,
		person.Parish, person.Community, person.Notes,
		nullable(person.TribeID), person.AvatarURL, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", translateErr(err))
	}
	return nil
}

// GetPersonDetail returns a person joined with edition, tribe name,
// payments and sector assignments.
func (s *SQLiteStore) GetPersonDetail(ctx context.Context, id string) (*models.PersonDetail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = ?`, id)
	person, err := scanPerson(row)
	if err != nil {
		return nil, err
	}

	detail := &models.PersonDetail{Person: *person}

	if person.TribeID != "" {
		err := s.db.QueryRowContext(ctx,
			"SELECT name FROM tribes WHERE id = ?", person.TribeID,
		).Scan(&detail.TribeName)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to get tribe name: %w", err)
		}
	}

	if detail.Edition, err = s.GetEdition(ctx, person.EditionID); err != nil {
		return nil, fmt.Errorf("failed to get person's edition: %w", err)
	}
	if detail.Payments, err = s.ListPayments(ctx, id); err != nil {
		return nil, err
	}
	if detail.Sectors, err = s.ListPersonSectors(ctx, id); err != nil {
		return nil, err
	}
	return detail, nil
}

// ListPeople returns the people of an edition ordered by name, optionally
// filtered by kind.
func (s *SQLiteStore) ListPeople(ctx context.Context, editionID string, kind models.PersonKind) ([]models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE edition_id = ?`
	args := []any{editionID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY full_name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// UpdatePerson updates an existing person. Kind and edition are not part
// of the update; both are fixed at creation.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET full_name = ?, birth_date = ?, phone = ?, email = ?,
			street = ?, number = ?, complement = ?, district = ?, city = ?, state = ?, postal_code = ?,
			height_cm = ?, weight_kg = ?, shirt_size = ?,
			takes_medication = ?, medications = ?, has_allergies = ?, allergies = ?,
			parish = ?, community = ?, notes = ?, avatar_url = ?
		 WHERE id = ?`,
		person.FullName, formatDate(person.BirthDate), person.Phone, person.Email,
		person.Street, person.Number, person.Complement, person.District,
		person.City, person.State, person.PostalCode,
		person.HeightCM, person.WeightKG, person.ShirtSize,
		person.TakesMedication, person.Medications, person.HasAllergies, person.Allergies,
		person.Parish, person.Community, person.Notes, person.AvatarURL,
		person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", translateErr(err))
	}
	return requireRow(res)
}

// SetTribe assigns a tribe to a person, or clears the assignment when
// tribeID is empty.
func (s *SQLiteStore) SetTribe(ctx context.Context, personID, tribeID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE people SET tribe_id = ? WHERE id = ?",
		nullable(tribeID), personID,
	)
	if err != nil {
		return fmt.Errorf("failed to set tribe: %w", translateErr(err))
	}
	return requireRow(res)
}

// ReplaceSectors replaces a person's sector assignments with exactly
// sectorIDs. The delete and the inserts run in a single transaction so a
// failure cannot leave the person with an unintended empty set.
func (s *SQLiteStore) ReplaceSectors(ctx context.Context, personID string, sectorIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM person_sectors WHERE person_id = ?", personID,
	); err != nil {
		return fmt.Errorf("failed to clear sector assignments: %w", err)
	}

	for _, sectorID := range sectorIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO person_sectors (person_id, sector_id) VALUES (?, ?)",
			personID, sectorID,
		); err != nil {
			return fmt.Errorf("failed to insert sector assignment: %w", translateErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPersonSectors returns the sectors assigned to a person, ordered by
// name.
func (s *SQLiteStore) ListPersonSectors(ctx context.Context, personID string) ([]models.Sector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.name, s.created_at FROM sectors s
		 JOIN person_sectors ps ON ps.sector_id = s.id
		 WHERE ps.person_id = ? ORDER BY s.name`, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list person sectors: %w", err)
	}
	defer rows.Close()

	var sectors []models.Sector
	for rows.Next() {
		var sector models.Sector
		if err := rows.Scan(&sector.ID, &sector.Name, &sector.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sectors: %w", err)
	}
	return sectors, nil
}

// nullable maps "" to NULL for optional foreign keys.
func nullable(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func scanPerson(row rowScanner) (*models.Person, error) {
	var (
		person models.Person
		birth  string
		tribe  sql.NullString
	)
	err := row.Scan(&person.ID, &person.EditionID, (*string)(&person.Kind),
		&person.FullName, &birth, &person.Phone, &person.Email,
		&person.Street, &person.Number, &person.Complement, &person.District,
		&person.City, &person.State, &person.PostalCode,
		&person.HeightCM, &person.WeightKG, &person.ShirtSize,
		&person.TakesMedication, &person.Medications, &person.HasAllergies, &person.Allergies,
		&person.Parish, &person.Community, &person.Notes,
		&tribe, &person.AvatarURL, &person.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan person: %w", err)
	}
	person.TribeID = tribe.String
	if person.BirthDate, err = parseDate(birth); err != nil {
		return nil, fmt.Errorf("failed to parse birth date: %w", err)
	}
	return &person, nil
}
