package service

import (
	"context"
	"log/slog"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

// NameInput is the data-transfer structure for the two name-only catalogs
// (tribes and sectors).
type NameInput struct {
	Name string
}

// Validate checks the catalog name rule.
func (in *NameInput) Validate() []FieldError {
	if len(in.Name) < 2 {
		return []FieldError{{"name", "must have at least 2 characters"}}
	}
	return nil
}

// CatalogService manages the two global name catalogs: tribes and sectors.
// All mutations are admin-only; duplicate names surface as
// storage.ErrAlreadyExists so the handler can show a distinct message.
type CatalogService struct {
	roleChecker
	store storage.Store
}

// NewCatalogService creates a catalog service with the given storage and
// role resolver.
func NewCatalogService(store storage.Store, roles *auth.RoleResolver) *CatalogService {
	return &CatalogService{roleChecker: roleChecker{roles: roles}, store: store}
}

// AddTribe creates a tribe. Admin only.
func (s *CatalogService) AddTribe(ctx context.Context, callerID string, in NameInput) (*models.Tribe, error) {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	tribe := &models.Tribe{Name: in.Name}
	if err := s.store.CreateTribe(ctx, tribe); err != nil {
		slog.Warn("AddTribe failed", "name", in.Name, "error", err)
		return nil, err
	}
	slog.Info("Tribe created", "tribe_id", tribe.ID, "name", tribe.Name)
	return tribe, nil
}

// DeleteTribe removes a tribe. Admin only.
func (s *CatalogService) DeleteTribe(ctx context.Context, callerID, tribeID string) error {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.store.DeleteTribe(ctx, tribeID); err != nil {
		slog.Error("DeleteTribe failed", "tribe_id", tribeID, "error", err)
		return err
	}
	slog.Info("Tribe deleted", "tribe_id", tribeID)
	return nil
}

// ListTribes returns all tribes. Any authenticated role.
func (s *CatalogService) ListTribes(ctx context.Context, callerID string) ([]models.Tribe, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	return s.store.ListTribes(ctx)
}

// AddSector creates a sector. Admin only.
func (s *CatalogService) AddSector(ctx context.Context, callerID string, in NameInput) (*models.Sector, error) {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	sector := &models.Sector{Name: in.Name}
	if err := s.store.CreateSector(ctx, sector); err != nil {
		slog.Warn("AddSector failed", "name", in.Name, "error", err)
		return nil, err
	}
	slog.Info("Sector created", "sector_id", sector.ID, "name", sector.Name)
	return sector, nil
}

// DeleteSector removes a sector and its assignments. Admin only.
func (s *CatalogService) DeleteSector(ctx context.Context, callerID, sectorID string) error {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.store.DeleteSector(ctx, sectorID); err != nil {
		slog.Error("DeleteSector failed", "sector_id", sectorID, "error", err)
		return err
	}
	slog.Info("Sector deleted", "sector_id", sectorID)
	return nil
}

// ListSectors returns all sectors. Any authenticated role.
func (s *CatalogService) ListSectors(ctx context.Context, callerID string) ([]models.Sector, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	return s.store.ListSectors(ctx)
}
