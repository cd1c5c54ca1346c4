package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mfonseca/acamp/internal/middleware"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/service"
)

const formDateLayout = "2006-01-02"

type editionsView struct {
	Editions []models.Edition
}

func (s *Server) handleEditions(w http.ResponseWriter, r *http.Request) {
	s.renderEditions(w, r, "", nil)
}

func (s *Server) renderEditions(w http.ResponseWriter, r *http.Request, errMsg string, fields map[string]string) {
	ctx := r.Context()
	role := middleware.RoleFrom(ctx)

	editions, err := s.editions.List(ctx, middleware.UserID(ctx))
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}

	s.render(w, "editions.tmpl", Page{
		Title:  "Editions",
		Role:   role,
		Caps:   capsFor(role),
		Error:  errMsg,
		Errors: fields,
		Data:   editionsView{Editions: editions},
	})
}

func (s *Server) handleCreateEdition(w http.ResponseWriter, r *http.Request) {
	in, fields := parseEditionForm(r)
	if len(fields) > 0 {
		s.renderEditions(w, r, "", fields)
		return
	}

	if _, err := s.editions.Create(r.Context(), middleware.UserID(r.Context()), in); err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderEditions(w, r, "", validationMap(v))
			return
		}
		s.renderEditions(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/editions")
}

func (s *Server) handleUpdateEdition(w http.ResponseWriter, r *http.Request) {
	in, fields := parseEditionForm(r)
	if len(fields) > 0 {
		s.renderEditions(w, r, "", fields)
		return
	}

	if err := s.editions.Update(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"), in); err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderEditions(w, r, "", validationMap(v))
			return
		}
		s.renderEditions(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/editions")
}

func (s *Server) handleDeleteEdition(w http.ResponseWriter, r *http.Request) {
	if err := s.editions.Delete(r.Context(), middleware.UserID(r.Context()), r.PathValue("id")); err != nil {
		s.renderEditions(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/editions")
}

// parseEditionForm converts the form into the typed input, collecting
// parse failures as field errors. Semantic rules run in the service's
// Validate.
func parseEditionForm(r *http.Request) (service.EditionInput, map[string]string) {
	fields := map[string]string{}

	sequence, err := strconv.Atoi(r.FormValue("sequence"))
	if err != nil {
		fields["sequence"] = "must be a number"
	}

	start, err := time.Parse(formDateLayout, r.FormValue("start_date"))
	if err != nil {
		fields["start_date"] = "must be a valid date"
	}
	end, err := time.Parse(formDateLayout, r.FormValue("end_date"))
	if err != nil {
		fields["end_date"] = "must be a valid date"
	}

	fee, err := parseOptionalAmount(r.FormValue("fee"))
	if err != nil {
		fields["fee"] = "must be a valid amount"
	}

	if len(fields) > 0 {
		return service.EditionInput{}, fields
	}
	return service.EditionInput{
		Sequence:  sequence,
		Name:      r.FormValue("name"),
		Location:  r.FormValue("location"),
		StartDate: start,
		EndDate:   end,
		FeeCents:  fee,
	}, nil
}
