package web

import (
	"net/http"

	"github.com/mfonseca/acamp/internal/middleware"
	"github.com/mfonseca/acamp/internal/service"
)

// catalogItem is the row shape shared by the tribes and sectors pages.
type catalogItem struct {
	ID   string
	Name string
}

type catalogView struct {
	// Kind is "tribes" or "sectors"; the template builds form actions
	// from it.
	Kind  string
	Label string
	Items []catalogItem
}

func (s *Server) handleTribes(w http.ResponseWriter, r *http.Request) {
	s.renderTribes(w, r, "", nil)
}

func (s *Server) renderTribes(w http.ResponseWriter, r *http.Request, errMsg string, fields map[string]string) {
	ctx := r.Context()
	role := middleware.RoleFrom(ctx)

	tribes, err := s.catalog.ListTribes(ctx, middleware.UserID(ctx))
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}

	items := make([]catalogItem, len(tribes))
	for i, tribe := range tribes {
		items[i] = catalogItem{ID: tribe.ID, Name: tribe.Name}
	}
	s.render(w, "catalog.tmpl", Page{
		Title:  "Tribes",
		Role:   role,
		Caps:   capsFor(role),
		Error:  errMsg,
		Errors: fields,
		Data:   catalogView{Kind: "tribes", Label: "Tribe", Items: items},
	})
}

func (s *Server) handleCreateTribe(w http.ResponseWriter, r *http.Request) {
	in := service.NameInput{Name: r.FormValue("name")}
	if _, err := s.catalog.AddTribe(r.Context(), middleware.UserID(r.Context()), in); err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderTribes(w, r, "", validationMap(v))
			return
		}
		s.renderTribes(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/tribes")
}

func (s *Server) handleDeleteTribe(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteTribe(r.Context(), middleware.UserID(r.Context()), r.PathValue("id")); err != nil {
		s.renderTribes(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/tribes")
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	s.renderSectors(w, r, "", nil)
}

func (s *Server) renderSectors(w http.ResponseWriter, r *http.Request, errMsg string, fields map[string]string) {
	ctx := r.Context()
	role := middleware.RoleFrom(ctx)

	sectors, err := s.catalog.ListSectors(ctx, middleware.UserID(ctx))
	if err != nil && errMsg == "" {
		errMsg = userMessage(err)
	}

	items := make([]catalogItem, len(sectors))
	for i, sector := range sectors {
		items[i] = catalogItem{ID: sector.ID, Name: sector.Name}
	}
	s.render(w, "catalog.tmpl", Page{
		Title:  "Sectors",
		Role:   role,
		Caps:   capsFor(role),
		Error:  errMsg,
		Errors: fields,
		Data:   catalogView{Kind: "sectors", Label: "Sector", Items: items},
	})
}

func (s *Server) handleCreateSector(w http.ResponseWriter, r *http.Request) {
	in := service.NameInput{Name: r.FormValue("name")}
	if _, err := s.catalog.AddSector(r.Context(), middleware.UserID(r.Context()), in); err != nil {
		if v := service.AsValidation(err); v != nil {
			s.renderSectors(w, r, "", validationMap(v))
			return
		}
		s.renderSectors(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/sectors")
}

func (s *Server) handleDeleteSector(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteSector(r.Context(), middleware.UserID(r.Context()), r.PathValue("id")); err != nil {
		s.renderSectors(w, r, userMessage(err), nil)
		return
	}
	redirectTo(w, r, "/dashboard/sectors")
}
