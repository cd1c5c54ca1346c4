package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

// EditionInput is the data-transfer structure for creating or updating an
// edition.
type EditionInput struct {
	Sequence  int
	Name      string
	Location  string
	StartDate time.Time
	EndDate   time.Time
	FeeCents  int64
}

// Validate checks the input's business rules and returns one FieldError
// per violation.
func (in *EditionInput) Validate() []FieldError {
	var errs []FieldError
	if in.Sequence < 1 {
		errs = append(errs, FieldError{"sequence", "must be at least 1"})
	}
	if in.Name == "" {
		errs = append(errs, FieldError{"name", "is required"})
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		errs = append(errs, FieldError{"dates", "start and end dates are required"})
	} else if in.EndDate.Before(in.StartDate) {
		errs = append(errs, FieldError{"end_date", "must not be before the start date"})
	}
	if in.FeeCents < 0 {
		errs = append(errs, FieldError{"fee", "must not be negative"})
	}
	return errs
}

// EditionService manages retreat editions. All mutations are admin-only.
type EditionService struct {
	roleChecker
	store storage.Store
}

// NewEditionService creates an edition service with the given storage and
// role resolver.
func NewEditionService(store storage.Store, roles *auth.RoleResolver) *EditionService {
	return &EditionService{roleChecker: roleChecker{roles: roles}, store: store}
}

// Create adds a new edition. Admin only.
func (s *EditionService) Create(ctx context.Context, callerID string, in EditionInput) (*models.Edition, error) {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	edition := &models.Edition{
		Sequence:  in.Sequence,
		Name:      in.Name,
		Location:  in.Location,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		FeeCents:  in.FeeCents,
	}
	if err := s.store.CreateEdition(ctx, edition); err != nil {
		slog.Error("CreateEdition failed", "sequence", in.Sequence, "error", err)
		return nil, err
	}

	slog.Info("Edition created", "edition_id", edition.ID, "sequence", edition.Sequence)
	return edition, nil
}

// Update modifies an existing edition. Admin only.
func (s *EditionService) Update(ctx context.Context, callerID, editionID string, in EditionInput) error {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return err
	}
	if errs := in.Validate(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	edition := &models.Edition{
		ID:        editionID,
		Sequence:  in.Sequence,
		Name:      in.Name,
		Location:  in.Location,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		FeeCents:  in.FeeCents,
	}
	if err := s.store.UpdateEdition(ctx, edition); err != nil {
		slog.Error("UpdateEdition failed", "edition_id", editionID, "error", err)
		return err
	}

	slog.Info("Edition updated", "edition_id", editionID)
	return nil
}

// Delete removes an edition and, through the schema cascade, its people
// and their payments. Admin only, destructive.
func (s *EditionService) Delete(ctx context.Context, callerID, editionID string) error {
	if err := s.authorize(ctx, callerID, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.store.DeleteEdition(ctx, editionID); err != nil {
		slog.Error("DeleteEdition failed", "edition_id", editionID, "error", err)
		return err
	}
	slog.Info("Edition deleted", "edition_id", editionID)
	return nil
}

// Get retrieves one edition. Any authenticated role.
func (s *EditionService) Get(ctx context.Context, callerID, editionID string) (*models.Edition, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	edition, err := s.store.GetEdition(ctx, editionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get edition: %w", err)
	}
	return edition, nil
}

// List returns all editions, newest sequence first. Any authenticated role.
func (s *EditionService) List(ctx context.Context, callerID string) ([]models.Edition, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}
	return s.store.ListEditions(ctx)
}
