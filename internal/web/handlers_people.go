package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mfonseca/acamp/internal/cep"
	"github.com/mfonseca/acamp/internal/finance"
	"github.com/mfonseca/acamp/internal/middleware"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/service"
)

type rosterView struct {
	Edition      *models.Edition
	Participants []models.Person
	Staff        []models.Person
}

// handleRoster renders an edition's people, split into participant and
// staff tabs, with the add-person form for roles that can edit.
func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	s.renderRoster(w, r, "", nil)
}

func (s *Server) renderRoster(w http.ResponseWriter, r *http.Request, errMsg string, fields map[string]string) {
	ctx := r.Context()
	callerID := middleware.UserID(ctx)
	role := middleware.RoleFrom(ctx)
	editionID := r.PathValue("edition")

	edition, err := s.editions.Get(ctx, callerID, editionID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	participants, err := s.people.List(ctx, callerID, editionID, models.KindParticipant)
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}
	staff, err := s.people.List(ctx, callerID, editionID, models.KindStaff)
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}

	s.render(w, "roster.tmpl", Page{
		Title:  edition.Name,
		Role:   role,
		Caps:   capsFor(role),
		Error:  errMsg,
		Errors: fields,
		Data: rosterView{
			Edition:      edition,
			Participants: participants,
			Staff:        staff,
		},
	})
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	editionID := r.PathValue("edition")
	kind := models.PersonKind(r.FormValue("kind"))

	in, fields := parsePersonForm(r)
	if len(fields) > 0 {
		s.renderRoster(w, r, "", fields)
		return
	}

	person, err := s.people.Create(r.Context(), middleware.UserID(r.Context()), editionID, kind, in)
	if err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderRoster(w, r, "", validationMap(v))
			return
		}
		s.renderRoster(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/people/%s", person.ID)
}

type personView struct {
	Detail     *service.PersonDetail
	AllTribes  []models.Tribe
	AllSectors []models.Sector
	// Assigned marks the person's current sector IDs for checkbox state.
	Assigned map[string]bool
	Statuses map[finance.Status]string
}

// statusLabels maps finance statuses to the badges the page shows.
var statusLabels = map[finance.Status]string{
	finance.StatusExempt:  "Exempt",
	finance.StatusPaid:    "Paid",
	finance.StatusPartial: "Partial",
	finance.StatusPending: "Pending",
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	s.renderPerson(w, r, "", nil)
}

func (s *Server) renderPerson(w http.ResponseWriter, r *http.Request, errMsg string, fields map[string]string) {
	ctx := r.Context()
	callerID := middleware.UserID(ctx)
	role := middleware.RoleFrom(ctx)

	detail, err := s.people.Get(ctx, callerID, r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tribes, err := s.catalog.ListTribes(ctx, callerID)
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}
	sectors, err := s.catalog.ListSectors(ctx, callerID)
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}

	assigned := make(map[string]bool, len(detail.Sectors))
	for _, sector := range detail.Sectors {
		assigned[sector.ID] = true
	}

	s.render(w, "person.tmpl", Page{
		Title:  detail.FullName,
		Role:   role,
		Caps:   capsFor(role),
		Error:  errMsg,
		Errors: fields,
		Data: personView{
			Detail:     detail,
			AllTribes:  tribes,
			AllSectors: sectors,
			Assigned:   assigned,
			Statuses:   statusLabels,
		},
	})
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("id")

	in, fields := parsePersonForm(r)
	if len(fields) > 0 {
		s.renderPerson(w, r, "", fields)
		return
	}

	if err := s.people.Update(r.Context(), middleware.UserID(r.Context()), personID, in); err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderPerson(w, r, "", validationMap(v))
			return
		}
		s.renderPerson(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/people/%s", personID)
}

// handlePersonSheet renders the printable record sheet.
func (s *Server) handlePersonSheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := middleware.RoleFrom(ctx)

	detail, err := s.people.Get(ctx, middleware.UserID(ctx), r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "sheet.tmpl", Page{
		Title: detail.FullName,
		Role:  role,
		Caps:  capsFor(role),
		Data:  personView{Detail: detail, Statuses: statusLabels},
	})
}

func (s *Server) handleAssignTribe(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("id")
	if err := s.people.AssignTribe(r.Context(), middleware.UserID(r.Context()), personID, r.FormValue("tribe_id")); err != nil {
		s.renderPerson(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/people/%s", personID)
}

func (s *Server) handleAssignSectors(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		s.renderPerson(w, r, "Invalid form submission.", nil)
		return
	}
	if err := s.people.AssignSectors(r.Context(), middleware.UserID(r.Context()), personID, r.PostForm["sector_id"]); err != nil {
		s.renderPerson(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/people/%s", personID)
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("id")

	amount, err := finance.ParseAmount(r.FormValue("amount"))
	if err != nil {
		s.renderPerson(w, r, "", map[string]string{"amount": "must be a valid amount"})
		return
	}
	paidOn, err := time.Parse(formDateLayout, r.FormValue("paid_on"))
	if err != nil {
		s.renderPerson(w, r, "", map[string]string{"paid_on": "must be a valid date"})
		return
	}

	in := service.PaymentInput{
		AmountCents: amount,
		PaidOn:      paidOn,
		Method:      r.FormValue("method"),
	}
	if _, err := s.payments.Add(r.Context(), middleware.UserID(r.Context()), personID, in); err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderPerson(w, r, "", validationMap(v))
			return
		}
		s.renderPerson(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/people/%s", personID)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.Delete(r.Context(), middleware.UserID(r.Context()), r.PathValue("id")); err != nil {
		slog.Warn("Payment deletion rejected", "payment_id", r.PathValue("id"), "error", err)
	}
	// The form carries the person to return to.
	redirectTo(w, r, "/dashboard/people/%s", r.FormValue("person_id"))
}

// handleCEP proxies the postal code lookup for the person form's address
// autofill.
func (s *Server) handleCEP(w http.ResponseWriter, r *http.Request) {
	addr, err := s.cep.Lookup(r.Context(), r.PathValue("code"))
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, cep.ErrInvalidCEP):
			status = http.StatusBadRequest
		case errors.Is(err, cep.ErrNotFound):
			status = http.StatusNotFound
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(addr)
}

// parsePersonForm converts the person form into the typed input,
// collecting parse failures as field errors.
func parsePersonForm(r *http.Request) (service.PersonInput, map[string]string) {
	fields := map[string]string{}

	birth, err := time.Parse(formDateLayout, r.FormValue("birth_date"))
	if err != nil {
		fields["birth_date"] = "must be a valid date"
	}

	var height int
	if v := r.FormValue("height_cm"); v != "" {
		if height, err = strconv.Atoi(v); err != nil {
			fields["height_cm"] = "must be a number"
		}
	}
	var weight float64
	if v := r.FormValue("weight_kg"); v != "" {
		if weight, err = strconv.ParseFloat(v, 64); err != nil {
			fields["weight_kg"] = "must be a number"
		}
	}

	if len(fields) > 0 {
		return service.PersonInput{}, fields
	}
	return service.PersonInput{
		FullName:        r.FormValue("full_name"),
		BirthDate:       birth,
		Phone:           r.FormValue("phone"),
		Email:           r.FormValue("email"),
		Street:          r.FormValue("street"),
		Number:          r.FormValue("number"),
		Complement:      r.FormValue("complement"),
		District:        r.FormValue("district"),
		City:            r.FormValue("city"),
		State:           r.FormValue("state"),
		PostalCode:      r.FormValue("postal_code"),
		HeightCM:        height,
		WeightKG:        weight,
		ShirtSize:       r.FormValue("shirt_size"),
		TakesMedication: r.FormValue("takes_medication") == "on",
		Medications:     r.FormValue("medications"),
		HasAllergies:    r.FormValue("has_allergies") == "on",
		Allergies:       r.FormValue("allergies"),
		Parish:          r.FormValue("parish"),
		Community:       r.FormValue("community"),
		Notes:           r.FormValue("notes"),
		AvatarURL:       r.FormValue("avatar_url"),
	}, nil
}

// parseOptionalAmount treats an empty form value as zero cents.
func parseOptionalAmount(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return finance.ParseAmount(v)
}
