package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/mfonseca/acamp/internal/models"
)

func sampleRow() PersonRow {
	return PersonRow{
		Person: models.Person{
			Kind:            models.KindParticipant,
			FullName:        "Jane Doe",
			BirthDate:       time.Date(1995, 7, 10, 0, 0, 0, 0, time.UTC),
			Phone:           "11999990000",
			Email:           "jane@example.com",
			City:            "Sao Paulo",
			State:           "SP",
			HeightCM:        165,
			WeightKG:        58.5,
			ShirtSize:       "M",
			TakesMedication: true,
			Medications:     "insulin",
		},
		TribeName:      "Lions",
		TotalPaidCents: 4000,
	}
}

func TestWriteCSV(t *testing.T) {
	t.Run("no rows writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, nil); err != ErrNothingToExport {
			t.Errorf("WriteCSV error = %v, want ErrNothingToExport", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Wrote %d bytes, want 0", buf.Len())
		}
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []PersonRow{sampleRow()}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want header + 1 row", len(records))
	}
	header, row := records[0], records[1]

	t.Run("header names the spreadsheet columns", func(t *testing.T) {
		if header[0] != "nome_completo" || header[len(header)-1] != "total_pago" {
			t.Errorf("Header = %v", header)
		}
		if len(header) != len(row) {
			t.Errorf("Header has %d columns, row has %d", len(header), len(row))
		}
	})

	t.Run("row flattens person, tribe and total", func(t *testing.T) {
		field := func(name string) string {
			for i, h := range header {
				if h == name {
					return row[i]
				}
			}
			t.Fatalf("No column %q", name)
			return ""
		}

		checks := map[string]string{
			"nome_completo":             "Jane Doe",
			"tipo":                      "participante",
			"data_nascimento":           "1995-07-10",
			"altura_cm":                 "165",
			"peso_kg":                   "58.5",
			"toma_medicamento_continuo": "sim",
			"possui_alergias":           "nao",
			"tribo":                     "Lions",
			"total_pago":                "40",
		}
		for name, want := range checks {
			if got := field(name); got != want {
				t.Errorf("%s = %q, want %q", name, got, want)
			}
		}
	})

	t.Run("lines end with CRLF", func(t *testing.T) {
		if !strings.Contains(buf.String(), "\r\n") {
			t.Error("Expected CRLF line endings")
		}
	})

	t.Run("staff label and blank zero fields", func(t *testing.T) {
		staff := sampleRow()
		staff.Person.Kind = models.KindStaff
		staff.Person.HeightCM = 0
		staff.Person.WeightKG = 0
		staff.TotalPaidCents = 0

		var out bytes.Buffer
		if err := WriteCSV(&out, []PersonRow{staff}); err != nil {
			t.Fatalf("WriteCSV failed: %v", err)
		}
		records, err := csv.NewReader(bytes.NewReader(out.Bytes())).ReadAll()
		if err != nil {
			t.Fatalf("Output is not valid CSV: %v", err)
		}
		line := records[1]
		if line[1] != "equipe" {
			t.Errorf("tipo = %q, want equipe", line[1])
		}
		if line[12] != "" || line[13] != "" {
			t.Errorf("Zero measurements = %q/%q, want blank", line[12], line[13])
		}
		if line[len(line)-1] != "0" {
			t.Errorf("total_pago = %q, want 0", line[len(line)-1])
		}
	})
}

func TestWritePDF(t *testing.T) {
	edition := &models.Edition{
		Sequence: 1,
		Name:     "Spring",
		Location: "Retreat Center",
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, edition, []PersonRow{sampleRow()}); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("Output does not start with a PDF header")
	}
	if buf.Len() < 500 {
		t.Errorf("PDF suspiciously small: %d bytes", buf.Len())
	}
}
