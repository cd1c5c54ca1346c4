package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/mfonseca/acamp/internal/export"
	"github.com/mfonseca/acamp/internal/middleware"
)

// handleExportCSV streams the edition's roster spreadsheet. The file is
// built in memory first so an export failure never sends a truncated
// download with a success status.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	editionID := r.PathValue("edition")

	var buf bytes.Buffer
	err := s.reports.WriteCSV(r.Context(), middleware.UserID(r.Context()), editionID, &buf)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			s.renderRoster(w, r, "Nothing to export: this edition has no people.", nil)
			return
		}
		s.renderRoster(w, r, userMessage(err), nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "roster-"+editionID+".csv"))
	w.Write(buf.Bytes())
}

// handleReportPDF streams the edition's participant report.
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	editionID := r.PathValue("edition")

	var buf bytes.Buffer
	err := s.reports.WritePDF(r.Context(), middleware.UserID(r.Context()), editionID, &buf)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			s.renderRoster(w, r, "Nothing to export: this edition has no participants.", nil)
			return
		}
		s.renderRoster(w, r, userMessage(err), nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "participants-"+editionID+".pdf"))
	w.Write(buf.Bytes())
}
