// Package export renders edition rosters as CSV files and PDF reports.
// The whole roster is materialized before writing; camp rosters are tens
// to low hundreds of rows.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mfonseca/acamp/internal/finance"
	"github.com/mfonseca/acamp/internal/models"
)

// ErrNothingToExport is returned when an edition has no people to export.
// No output is written in that case.
var ErrNothingToExport = errors.New("nothing to export")

// PersonRow is one flattened roster row: the person, the tribe name
// collapsed to a scalar, and the payments collapsed to a sum.
type PersonRow struct {
	Person         models.Person
	TribeName      string
	TotalPaidCents int64
}

// csvHeader lists the exported columns, mirroring the management app's
// spreadsheet layout.
var csvHeader = []string{
	"nome_completo", "tipo", "data_nascimento", "telefone", "email",
	"endereco_rua", "endereco_numero", "endereco_complemento",
	"endereco_bairro", "endereco_cidade", "endereco_estado", "endereco_cep",
	"altura_cm", "peso_kg", "tamanho_camiseta",
	"toma_medicamento_continuo", "medicamentos_continuos",
	"possui_alergias", "alergias",
	"paroquia", "comunidade", "observacoes",
	"tribo", "total_pago",
}

// WriteCSV writes the rows as a comma-delimited file with a header row and
// CRLF line endings.
func WriteCSV(w io.Writer, rows []PersonRow) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		p := row.Person
		record := []string{
			p.FullName,
			kindLabel(p.Kind),
			p.BirthDate.Format("2006-01-02"),
			p.Phone,
			p.Email,
			p.Street, p.Number, p.Complement, p.District, p.City, p.State, p.PostalCode,
			blankIfZero(p.HeightCM),
			weightField(p.WeightKG),
			p.ShirtSize,
			boolField(p.TakesMedication), p.Medications,
			boolField(p.HasAllergies), p.Allergies,
			p.Parish, p.Community, p.Notes,
			row.TribeName,
			finance.FormatAmount(row.TotalPaidCents),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// kindLabel keeps the export's kind values in the spreadsheet vocabulary
// the camp teams already use.
func kindLabel(kind models.PersonKind) string {
	if kind == models.KindStaff {
		return "equipe"
	}
	return "participante"
}

func boolField(b bool) string {
	if b {
		return "sim"
	}
	return "nao"
}

func blankIfZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func weightField(kg float64) string {
	if kg == 0 {
		return ""
	}
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
