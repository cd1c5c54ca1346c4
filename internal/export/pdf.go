package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/mfonseca/acamp/internal/models"
)

// WritePDF writes the participant report: a page header with the edition
// name followed by a table of name, phone and tribe, one row per person.
// Rows are expected to arrive sorted by name.
func WritePDF(w io.Writer, edition *models.Edition, rows []PersonRow) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(edition.Name, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Participants - %s", edition.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, edition.Location, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	const (
		nameWidth  = 90.0
		phoneWidth = 45.0
		tribeWidth = 55.0
	)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(nameWidth, 8, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(phoneWidth, 8, "Phone", "1", 0, "L", true, 0, "")
	pdf.CellFormat(tribeWidth, 8, "Tribe", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(nameWidth, 7, row.Person.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(phoneWidth, 7, row.Person.Phone, "1", 0, "L", false, 0, "")
		pdf.CellFormat(tribeWidth, 7, row.TribeName, "1", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
