package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfonseca/acamp/internal/models"
)

// CreateEdition persists a new edition, generating its ID.
func (s *SQLiteStore) CreateEdition(ctx context.Context, edition *models.Edition) error {
	if edition.ID == "" {
		edition.ID = uuid.New().String()
	}
	if edition.CreatedAt == 0 {
		edition.CreatedAt = nowUnix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO editions (id, sequence, name, location, start_date, end_date, fee_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		edition.ID, edition.Sequence, edition.Name, edition.Location,
		formatDate(edition.StartDate), formatDate(edition.EndDate),
		edition.FeeCents, edition.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert edition: %w", translateErr(err))
	}
	return nil
}

// GetEdition retrieves an edition by ID.
func (s *SQLiteStore) GetEdition(ctx context.Context, id string) (*models.Edition, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, sequence, name, location, start_date, end_date, fee_cents, created_at
		 FROM editions WHERE id = ?`, id)
	return scanEdition(row)
}

// ListEditions returns all editions ordered by sequence number, newest first.
func (s *SQLiteStore) ListEditions(ctx context.Context) ([]models.Edition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sequence, name, location, start_date, end_date, fee_cents, created_at
		 FROM editions ORDER BY sequence DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	defer rows.Close()

	var editions []models.Edition
	for rows.Next() {
		edition, err := scanEdition(rows)
		if err != nil {
			return nil, err
		}
		editions = append(editions, *edition)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate editions: %w", err)
	}
	return editions, nil
}

// UpdateEdition updates an existing edition.
func (s *SQLiteStore) UpdateEdition(ctx context.Context, edition *models.Edition) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE editions SET sequence = ?, name = ?, location = ?, start_date = ?, end_date = ?, fee_cents = ?
		 WHERE id = ?`,
		edition.Sequence, edition.Name, edition.Location,
		formatDate(edition.StartDate), formatDate(edition.EndDate),
		edition.FeeCents, edition.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update edition: %w", translateErr(err))
	}
	return requireRow(res)
}

// DeleteEdition removes an edition. People and payments cascade at the
// schema level.
func (s *SQLiteStore) DeleteEdition(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM editions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete edition: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEdition(row rowScanner) (*models.Edition, error) {
	var (
		edition    models.Edition
		start, end string
	)
	err := row.Scan(&edition.ID, &edition.Sequence, &edition.Name, &edition.Location,
		&start, &end, &edition.FeeCents, &edition.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan edition: %w", translateErr(err))
	}
	if edition.StartDate, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("failed to parse edition start date: %w", err)
	}
	if edition.EndDate, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("failed to parse edition end date: %w", err)
	}
	return &edition, nil
}
