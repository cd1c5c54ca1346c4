package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfonseca/acamp/internal/models"
)

// CreateTribe persists a new tribe. A duplicate name surfaces as
// storage.ErrAlreadyExists.
func (s *SQLiteStore) CreateTribe(ctx context.Context, tribe *models.Tribe) error {
	if tribe.ID == "" {
		tribe.ID = uuid.New().String()
	}
	if tribe.CreatedAt == 0 {
		tribe.CreatedAt = nowUnix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tribes (id, name, created_at) VALUES (?, ?, ?)",
		tribe.ID, tribe.Name, tribe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tribe: %w", translateErr(err))
	}
	return nil
}

// ListTribes returns all tribes ordered by name.
func (s *SQLiteStore) ListTribes(ctx context.Context) ([]models.Tribe, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM tribes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tribes: %w", err)
	}
	defer rows.Close()

	var tribes []models.Tribe
	for rows.Next() {
		var tribe models.Tribe
		if err := rows.Scan(&tribe.ID, &tribe.Name, &tribe.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tribe: %w", err)
		}
		tribes = append(tribes, tribe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tribes: %w", err)
	}
	return tribes, nil
}

// DeleteTribe removes a tribe. People assigned to it fall back to no tribe
// via the schema's ON DELETE SET NULL.
func (s *SQLiteStore) DeleteTribe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tribes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tribe: %w", err)
	}
	return requireRow(res)
}

// CreateSector persists a new sector, with the same uniqueness behavior as
// CreateTribe.
func (s *SQLiteStore) CreateSector(ctx context.Context, sector *models.Sector) error {
	if sector.ID == "" {
		sector.ID = uuid.New().String()
	}
	if sector.CreatedAt == 0 {
		sector.CreatedAt = nowUnix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sectors (id, name, created_at) VALUES (?, ?, ?)",
		sector.ID, sector.Name, sector.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sector: %w", translateErr(err))
	}
	return nil
}

// ListSectors returns all sectors ordered by name.
func (s *SQLiteStore) ListSectors(ctx context.Context) ([]models.Sector, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM sectors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
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

// DeleteSector removes a sector and, via cascade, its assignments.
func (s *SQLiteStore) DeleteSector(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sectors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete sector: %w", err)
	}
	return requireRow(res)
}
