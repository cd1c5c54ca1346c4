package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/export"
	"github.com/mfonseca/acamp/internal/finance"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

// ReportService flattens edition rosters into CSV exports and PDF
// reports. Any authenticated role can export; exports are read-only.
type ReportService struct {
	roleChecker
	store storage.Store
}

// NewReportService creates a report service with the given storage and
// role resolver.
func NewReportService(store storage.Store, roles *auth.RoleResolver) *ReportService {
	return &ReportService{roleChecker: roleChecker{roles: roles}, store: store}
}

// WriteCSV writes the edition's full roster (participants and staff) to w.
// Returns export.ErrNothingToExport without writing when the edition has
// no people.
func (s *ReportService) WriteCSV(ctx context.Context, callerID, editionID string, w io.Writer) error {
	rows, err := s.rows(ctx, callerID, editionID, "")
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, rows); err != nil {
		return err
	}
	slog.Info("CSV exported", "edition_id", editionID, "rows", len(rows))
	return nil
}

// WritePDF writes the edition's participant report to w.
func (s *ReportService) WritePDF(ctx context.Context, callerID, editionID string, w io.Writer) error {
	rows, err := s.rows(ctx, callerID, editionID, models.KindParticipant)
	if err != nil {
		return err
	}
	edition, err := s.store.GetEdition(ctx, editionID)
	if err != nil {
		return fmt.Errorf("failed to get edition: %w", err)
	}
	if err := export.WritePDF(w, edition, rows); err != nil {
		return err
	}
	slog.Info("PDF report generated", "edition_id", editionID, "rows", len(rows))
	return nil
}

// rows flattens the roster: tribe name as a scalar, payments as a sum.
func (s *ReportService) rows(ctx context.Context, callerID, editionID string, kind models.PersonKind) ([]export.PersonRow, error) {
	if err := s.authorize(ctx, callerID, anyRole...); err != nil {
		return nil, err
	}

	people, err := s.store.ListPeople(ctx, editionID, kind)
	if err != nil {
		return nil, err
	}

	tribes, err := s.store.ListTribes(ctx)
	if err != nil {
		return nil, err
	}
	tribeNames := make(map[string]string, len(tribes))
	for _, tribe := range tribes {
		tribeNames[tribe.ID] = tribe.Name
	}

	rows := make([]export.PersonRow, 0, len(people))
	for _, person := range people {
		payments, err := s.store.ListPayments(ctx, person.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, export.PersonRow{
			Person:         person,
			TribeName:      tribeNames[person.TribeID],
			TotalPaidCents: finance.Summarize(0, payments).TotalPaidCents,
		})
	}
	return rows, nil
}
