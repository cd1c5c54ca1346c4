package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/export"
	"github.com/mfonseca/acamp/internal/finance"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
	"github.com/mfonseca/acamp/internal/storage/sqlite"
)

// testEnv wires real storage behind the services so authorization,
// validation and persistence are exercised together.
type testEnv struct {
	store    storage.Store
	editions *EditionService
	people   *PersonService
	catalog  *CatalogService
	payments *PaymentService
	reports  *ReportService

	admin  string
	editor string
	viewer string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	seedUser := func(email string, role models.Role) string {
		user := models.NewUser(email, email, "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("Failed to seed user: %v", err)
		}
		if err := store.UpsertProfile(ctx, &models.Profile{UserID: user.ID, Role: role}); err != nil {
			t.Fatalf("Failed to seed profile: %v", err)
		}
		return user.ID
	}

	roles := auth.NewRoleResolver(store)
	return &testEnv{
		store:    store,
		editions: NewEditionService(store, roles),
		people:   NewPersonService(store, roles),
		catalog:  NewCatalogService(store, roles),
		payments: NewPaymentService(store, roles),
		reports:  NewReportService(store, roles),
		admin:    seedUser("admin@example.com", models.RoleAdmin),
		editor:   seedUser("editor@example.com", models.RoleEditor),
		viewer:   seedUser("viewer@example.com", models.RoleViewer),
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func validEdition(sequence int) EditionInput {
	return EditionInput{
		Sequence:  sequence,
		Name:      "Spring",
		Location:  "Retreat Center",
		StartDate: date("2026-03-06"),
		EndDate:   date("2026-03-08"),
		FeeCents:  10000,
	}
}

func TestEditionService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("admin creates, everyone reads", func(t *testing.T) {
		edition, err := env.editions.Create(ctx, env.admin, validEdition(1))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		for _, caller := range []string{env.admin, env.editor, env.viewer} {
			if _, err := env.editions.Get(ctx, caller, edition.ID); err != nil {
				t.Errorf("Get as %s failed: %v", caller, err)
			}
		}
	})

	t.Run("editor and viewer cannot mutate", func(t *testing.T) {
		for _, caller := range []string{env.editor, env.viewer} {
			if _, err := env.editions.Create(ctx, caller, validEdition(2)); !errors.Is(err, ErrAccessDenied) {
				t.Errorf("Create error = %v, want ErrAccessDenied", err)
			}
		}
	})

	t.Run("empty caller is denied", func(t *testing.T) {
		if _, err := env.editions.Create(ctx, "", validEdition(3)); !errors.Is(err, ErrAccessDenied) {
			t.Errorf("Create error = %v, want ErrAccessDenied", err)
		}
	})

	t.Run("unknown caller acts as viewer", func(t *testing.T) {
		if _, err := env.editions.Create(ctx, "no-such-user", validEdition(3)); !errors.Is(err, ErrAccessDenied) {
			t.Errorf("Create error = %v, want ErrAccessDenied", err)
		}
	})

	t.Run("end before start is a validation error", func(t *testing.T) {
		in := validEdition(4)
		in.StartDate, in.EndDate = in.EndDate, in.StartDate
		_, err := env.editions.Create(ctx, env.admin, in)
		v := AsValidation(err)
		if v == nil {
			t.Fatalf("Create error = %v, want ValidationError", err)
		}
		if len(v.Fields) != 1 || v.Fields[0].Field != "end_date" {
			t.Errorf("Fields = %+v, want single end_date error", v.Fields)
		}
	})

	t.Run("duplicate sequence surfaces ErrAlreadyExists", func(t *testing.T) {
		if _, err := env.editions.Create(ctx, env.admin, validEdition(1)); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("Create error = %v, want ErrAlreadyExists", err)
		}
	})
}

func TestPersonService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	edition, err := env.editions.Create(ctx, env.admin, validEdition(1))
	if err != nil {
		t.Fatalf("Failed to seed edition: %v", err)
	}

	valid := PersonInput{FullName: "Jane Doe", BirthDate: date("1995-07-10")}

	t.Run("editor registers a participant", func(t *testing.T) {
		person, err := env.people.Create(ctx, env.editor, edition.ID, models.KindParticipant, valid)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if person.Kind != models.KindParticipant {
			t.Errorf("Kind = %s, want participant", person.Kind)
		}
	})

	t.Run("viewer cannot register", func(t *testing.T) {
		if _, err := env.people.Create(ctx, env.viewer, edition.ID, models.KindStaff, valid); !errors.Is(err, ErrAccessDenied) {
			t.Errorf("Create error = %v, want ErrAccessDenied", err)
		}
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := env.people.Create(ctx, env.editor, edition.ID, "volunteer", valid)
		if AsValidation(err) == nil {
			t.Errorf("Create error = %v, want ValidationError", err)
		}
	})

	t.Run("missing edition rejected", func(t *testing.T) {
		_, err := env.people.Create(ctx, env.editor, "no-such-edition", models.KindParticipant, valid)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Create error = %v, want ErrNotFound", err)
		}
	})

	t.Run("bad email rejected", func(t *testing.T) {
		in := valid
		in.Email = "not-an-address"
		_, err := env.people.Create(ctx, env.editor, edition.ID, models.KindParticipant, in)
		v := AsValidation(err)
		if v == nil || v.Fields[0].Field != "email" {
			t.Errorf("Create error = %v, want email validation error", err)
		}
	})

	t.Run("detail carries financial summary against the edition fee", func(t *testing.T) {
		person, err := env.people.Create(ctx, env.editor, edition.ID, models.KindParticipant, PersonInput{
			FullName: "Paying Person", BirthDate: date("1990-01-01"),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := env.payments.Add(ctx, env.editor, person.ID, PaymentInput{
			AmountCents: 4000, PaidOn: date("2026-02-01"), Method: "pix",
		}); err != nil {
			t.Fatalf("Add payment failed: %v", err)
		}

		detail, err := env.people.Get(ctx, env.viewer, person.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if detail.Finance.Status != finance.StatusPartial {
			t.Errorf("Status = %s, want partial", detail.Finance.Status)
		}
		if detail.Finance.BalanceCents != 6000 {
			t.Errorf("BalanceCents = %d, want 6000", detail.Finance.BalanceCents)
		}
	})

	t.Run("tribe distribution counts participants", func(t *testing.T) {
		tribe, err := env.catalog.AddTribe(ctx, env.admin, NameInput{Name: "Lions"})
		if err != nil {
			t.Fatalf("AddTribe failed: %v", err)
		}
		person, err := env.people.Create(ctx, env.editor, edition.ID, models.KindParticipant, PersonInput{
			FullName: "Tribal Person", BirthDate: date("1992-02-02"),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := env.people.AssignTribe(ctx, env.editor, person.ID, tribe.ID); err != nil {
			t.Fatalf("AssignTribe failed: %v", err)
		}

		dist, err := env.people.TribeDistribution(ctx, env.viewer, edition.ID)
		if err != nil {
			t.Fatalf("TribeDistribution failed: %v", err)
		}
		var lions int
		for _, tc := range dist {
			if tc.TribeName == "Lions" {
				lions = tc.Count
			}
		}
		if lions != 1 {
			t.Errorf("Lions count = %d, want 1", lions)
		}
	})

	t.Run("recent signups honors the limit", func(t *testing.T) {
		recent, err := env.people.RecentSignups(ctx, env.viewer, edition.ID, 2)
		if err != nil {
			t.Fatalf("RecentSignups failed: %v", err)
		}
		if len(recent) != 2 {
			t.Errorf("len(recent) = %d, want 2", len(recent))
		}
	})
}

func TestPaymentServiceValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	edition, err := env.editions.Create(ctx, env.admin, validEdition(1))
	if err != nil {
		t.Fatalf("Failed to seed edition: %v", err)
	}
	person, err := env.people.Create(ctx, env.editor, edition.ID, models.KindParticipant, PersonInput{
		FullName: "Jane Doe", BirthDate: date("1995-07-10"),
	})
	if err != nil {
		t.Fatalf("Failed to seed person: %v", err)
	}

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := env.payments.Add(ctx, env.editor, person.ID, PaymentInput{PaidOn: date("2026-02-01")})
		if AsValidation(err) == nil {
			t.Errorf("Add error = %v, want ValidationError", err)
		}
	})

	t.Run("viewer cannot record payments", func(t *testing.T) {
		_, err := env.payments.Add(ctx, env.viewer, person.ID, PaymentInput{
			AmountCents: 1000, PaidOn: date("2026-02-01"),
		})
		if !errors.Is(err, ErrAccessDenied) {
			t.Errorf("Add error = %v, want ErrAccessDenied", err)
		}
	})

	t.Run("unknown person rejected", func(t *testing.T) {
		_, err := env.payments.Add(ctx, env.editor, "no-such-person", PaymentInput{
			AmountCents: 1000, PaidOn: date("2026-02-01"),
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Add error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete and recompute", func(t *testing.T) {
		payment, err := env.payments.Add(ctx, env.editor, person.ID, PaymentInput{
			AmountCents: 10000, PaidOn: date("2026-02-01"),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := env.payments.Delete(ctx, env.editor, payment.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		detail, err := env.people.Get(ctx, env.viewer, person.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if detail.Finance.Status != finance.StatusPending {
			t.Errorf("Status after delete = %s, want pending", detail.Finance.Status)
		}
	})
}

func TestCatalogService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("editor cannot manage catalogs", func(t *testing.T) {
		if _, err := env.catalog.AddTribe(ctx, env.editor, NameInput{Name: "Lions"}); !errors.Is(err, ErrAccessDenied) {
			t.Errorf("AddTribe error = %v, want ErrAccessDenied", err)
		}
		if _, err := env.catalog.AddSector(ctx, env.editor, NameInput{Name: "Kitchen"}); !errors.Is(err, ErrAccessDenied) {
			t.Errorf("AddSector error = %v, want ErrAccessDenied", err)
		}
	})

	t.Run("short name rejected", func(t *testing.T) {
		if _, err := env.catalog.AddTribe(ctx, env.admin, NameInput{Name: "L"}); AsValidation(err) == nil {
			t.Errorf("AddTribe error = %v, want ValidationError", err)
		}
	})

	t.Run("duplicate name surfaces ErrAlreadyExists", func(t *testing.T) {
		if _, err := env.catalog.AddTribe(ctx, env.admin, NameInput{Name: "Lions"}); err != nil {
			t.Fatalf("AddTribe failed: %v", err)
		}
		if _, err := env.catalog.AddTribe(ctx, env.admin, NameInput{Name: "Lions"}); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("AddTribe error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("deleting a sector clears its assignments", func(t *testing.T) {
		edition, err := env.editions.Create(ctx, env.admin, validEdition(1))
		if err != nil {
			t.Fatalf("Failed to seed edition: %v", err)
		}
		person, err := env.people.Create(ctx, env.editor, edition.ID, models.KindStaff, PersonInput{
			FullName: "Staff Person", BirthDate: date("1990-01-01"),
		})
		if err != nil {
			t.Fatalf("Failed to seed person: %v", err)
		}
		sector, err := env.catalog.AddSector(ctx, env.admin, NameInput{Name: "Kitchen"})
		if err != nil {
			t.Fatalf("AddSector failed: %v", err)
		}
		if err := env.people.AssignSectors(ctx, env.editor, person.ID, []string{sector.ID}); err != nil {
			t.Fatalf("AssignSectors failed: %v", err)
		}

		if err := env.catalog.DeleteSector(ctx, env.admin, sector.ID); err != nil {
			t.Fatalf("DeleteSector failed: %v", err)
		}
		assigned, err := env.store.ListPersonSectors(ctx, person.ID)
		if err != nil {
			t.Fatalf("ListPersonSectors failed: %v", err)
		}
		if len(assigned) != 0 {
			t.Errorf("Assigned = %v, want empty after sector deletion", assigned)
		}
	})
}

func TestReportService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	edition, err := env.editions.Create(ctx, env.admin, validEdition(1))
	if err != nil {
		t.Fatalf("Failed to seed edition: %v", err)
	}

	t.Run("empty roster yields nothing to export", func(t *testing.T) {
		var buf bytes.Buffer
		if err := env.reports.WriteCSV(ctx, env.viewer, edition.ID, &buf); !errors.Is(err, export.ErrNothingToExport) {
			t.Errorf("WriteCSV error = %v, want ErrNothingToExport", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Wrote %d bytes on failed export, want 0", buf.Len())
		}
	})

	t.Run("roster export flattens tribe and payment total", func(t *testing.T) {
		person, err := env.people.Create(ctx, env.editor, edition.ID, models.KindParticipant, PersonInput{
			FullName: "Jane Doe", BirthDate: date("1995-07-10"),
		})
		if err != nil {
			t.Fatalf("Failed to seed person: %v", err)
		}
		if _, err := env.payments.Add(ctx, env.editor, person.ID, PaymentInput{
			AmountCents: 4000, PaidOn: date("2026-02-01"),
		}); err != nil {
			t.Fatalf("Failed to seed payment: %v", err)
		}

		var buf bytes.Buffer
		if err := env.reports.WriteCSV(ctx, env.viewer, edition.ID, &buf); err != nil {
			t.Fatalf("WriteCSV failed: %v", err)
		}
		body := buf.String()
		if !bytes.Contains(buf.Bytes(), []byte("Jane Doe")) {
			t.Errorf("CSV missing person name:\n%s", body)
		}
		if !bytes.Contains(buf.Bytes(), []byte(",40\r\n")) {
			t.Errorf("CSV missing formatted payment total:\n%s", body)
		}
	})

	t.Run("pdf report renders participants", func(t *testing.T) {
		var buf bytes.Buffer
		if err := env.reports.WritePDF(ctx, env.viewer, edition.ID, &buf); err != nil {
			t.Fatalf("WritePDF failed: %v", err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Error("Output does not start with a PDF header")
		}
	})
}
